package model

import "time"

// Registration statuses. A registration is created directly in the
// registered state and moves to cancelled exactly once; cancelled rows
// are terminal and are never flipped back. Registering again after a
// cancellation inserts a fresh row.
const (
	StatusRegistered = "registered"
	StatusCancelled  = "cancelled"
)

// Registration records one user's seat at one event, mirroring the
// `registrations` table. At most one row per (user, event) pair may be
// in the registered state at any time; rows are never physically
// deleted.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user holding the seat.
//  EventID   – event the seat belongs to.
//  Status    – registered or cancelled.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last status change timestamp.
type Registration struct {
	ID        uint64    `json:"id"`        // registrations.id
	UserID    uint64    `json:"userId"`    // registrations.user_id
	EventID   uint64    `json:"eventId"`   // registrations.event_id
	Status    string    `json:"status"`    // registrations.status
	CreatedAt time.Time `json:"createdAt"` // registrations.created_at
	UpdatedAt time.Time `json:"-"`         // registrations.updated_at
}
