package model

import "time"

// Event represents a row in the `events` table. Capacity is fixed at
// creation time while AvailableSeats is mutated exclusively by the
// registration ledger; the two together bound the seat pool:
// 0 <= AvailableSeats <= Capacity at all times.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – event title.
//  Organizer      – organizing company or group.
//  Location       – city or "Online".
//  Date           – scheduled start timestamp (UTC).
//  Description    – free-form description text.
//  Capacity       – total number of seats (>= 1).
//  AvailableSeats – seats still open for registration.
//  Category       – descriptive tag such as "Tech" or "Business".
//  CreatedAt      – timestamp of creation.
type Event struct {
	ID             uint64    `json:"id"`             // events.id
	Name           string    `json:"name"`           // events.name
	Organizer      string    `json:"organizer"`      // events.organizer
	Location       string    `json:"location"`       // events.location
	Date           time.Time `json:"date"`           // events.date
	Description    string    `json:"description"`    // events.description
	Capacity       int       `json:"capacity"`       // events.capacity
	AvailableSeats int       `json:"availableSeats"` // events.available_seats
	Category       string    `json:"category"`       // events.category
	CreatedAt      time.Time `json:"createdAt"`      // events.created_at
}
