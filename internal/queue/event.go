// Package queue defines message payloads exchanged over the message broker.
package queue

// RegistrationActivityEvent is published whenever the registration
// ledger commits a register or cancel. It carries enough context for
// downstream consumers to log or notify without querying the primary
// database. Action is "registered" or "cancelled".
type RegistrationActivityEvent struct {
	RegistrationID uint64 `json:"registration_id,omitempty"`
	Action         string `json:"action"`
	UserID         uint64 `json:"user_id"`
	EventID        uint64 `json:"event_id"`
	EventName      string `json:"event_name"`
	Location       string `json:"location"`
	ScheduledAt    string `json:"scheduled_at"`
	SeatsLeft      int    `json:"seats_left"`
	OccurredAt     string `json:"occurred_at"`
}
