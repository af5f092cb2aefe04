// Package repository implements the persistence layer over MySQL. This
// file defines sentinel error values shared across repositories so that
// handlers can translate failure scenarios into the right HTTP
// responses with errors.Is instead of string matching.
package repository

import "errors"

// ErrEventNotFound is returned when an event ID does not resolve to a
// catalog row. Handlers translate it into HTTP 404.
var ErrEventNotFound = errors.New("event not found")

// ErrEventFull is returned by Register when the event has no available
// seats left. Handlers translate it into HTTP 400.
var ErrEventFull = errors.New("event is full")

// ErrAlreadyRegistered is returned by Register when the user already
// holds an active registration for the event. Registering is not
// idempotent: the second call must fail rather than silently succeed.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrRegistrationNotFound is returned by Cancel when no active
// registration exists for the (user, event) pair, including when it was
// already cancelled. Cancelling twice must fail on the second call so a
// seat is never given back more than once.
var ErrRegistrationNotFound = errors.New("registration not found")
