package repository

import (
	"context"
	"database/sql"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
)

// RegistrationRepo is the registration ledger. It is the sole writer of
// registrations.status and events.available_seats. Register and Cancel
// each run inside a single transaction that first locks the event row
// with SELECT ... FOR UPDATE, so all seat accounting for one event is
// serialized: two concurrent registrations against the last seat always
// end as exactly one success and one ErrEventFull.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a new RegistrationRepo bound to the given
// database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

// Register consumes one seat and inserts an active registration row for
// the (user, event) pair, atomically. It fails with ErrEventNotFound,
// ErrAlreadyRegistered or ErrEventFull, in that order of precedence,
// and leaves no partial state behind on any failure.
//
// Re-registering after a cancellation is allowed and inserts a fresh
// row; only one row per pair may be in the registered state, which the
// duplicate check enforces under the event row lock.
func (r *RegistrationRepo) Register(ctx context.Context, userID, eventID uint64) (model.Registration, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Registration{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Lock the event row; every register/cancel for this event queues here.
	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT available_seats FROM events WHERE id = ? FOR UPDATE`, eventID,
	).Scan(&available)
	if err == sql.ErrNoRows {
		return model.Registration{}, ErrEventNotFound
	}
	if err != nil {
		return model.Registration{}, err
	}

	var active int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE user_id = ? AND event_id = ? AND status = ?`,
		userID, eventID, model.StatusRegistered,
	).Scan(&active)
	if err != nil {
		return model.Registration{}, err
	}
	if active > 0 {
		return model.Registration{}, ErrAlreadyRegistered
	}

	// Conditional decrement keeps available_seats from ever going negative
	// even if the lock above were bypassed.
	res, err := tx.ExecContext(ctx,
		`UPDATE events SET available_seats = available_seats - 1 WHERE id = ? AND available_seats > 0`,
		eventID)
	if err != nil {
		return model.Registration{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Registration{}, err
	}
	if affected == 0 {
		return model.Registration{}, ErrEventFull
	}

	ins, err := tx.ExecContext(ctx,
		`INSERT INTO registrations (user_id, event_id, status) VALUES (?,?,?)`,
		userID, eventID, model.StatusRegistered)
	if err != nil {
		return model.Registration{}, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return model.Registration{}, err
	}

	var reg model.Registration
	err = tx.QueryRowContext(ctx,
		`SELECT id, user_id, event_id, status, created_at, updated_at FROM registrations WHERE id = ?`,
		uint64(id),
	).Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return model.Registration{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Registration{}, err
	}
	committed = true
	return reg, nil
}

// Cancel flips the active registration for the (user, event) pair to
// cancelled and returns the seat to the pool, atomically. The affected
// row's ID is returned so callers can reference the cancellation in the
// activity stream. The seat increment is bounded above by capacity. It
// fails with ErrEventNotFound when the event does not exist and
// ErrRegistrationNotFound when no active registration exists, including
// when it was already cancelled.
func (r *RegistrationRepo) Cancel(ctx context.Context, userID, eventID uint64) (uint64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Same lock as Register so cancels serialize with registrations.
	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT available_seats FROM events WHERE id = ? FOR UPDATE`, eventID,
	).Scan(&available)
	if err == sql.ErrNoRows {
		return 0, ErrEventNotFound
	}
	if err != nil {
		return 0, err
	}

	var regID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM registrations WHERE user_id = ? AND event_id = ? AND status = ? ORDER BY id DESC LIMIT 1`,
		userID, eventID, model.StatusRegistered,
	).Scan(&regID)
	if err == sql.ErrNoRows {
		return 0, ErrRegistrationNotFound
	}
	if err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE registrations SET status = ? WHERE id = ?`,
		model.StatusCancelled, regID); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE events SET available_seats = LEAST(available_seats + 1, capacity) WHERE id = ?`,
		eventID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return regID, nil
}

// RegistrationWithEvent pairs a registration's status with the full
// event it points to. It is the row shape returned by ListByUser for
// the dashboard partitioning done in the handler layer.
type RegistrationWithEvent struct {
	Status string
	Event  model.Event
}

// ListByUser returns all of a user's registrations joined with their
// events, ordered by event date ascending for deterministic output.
// Registrations whose event has been deleted drop out of the inner join
// and are silently skipped.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]RegistrationWithEvent, error) {
	const q = `SELECT r.status,
	                  e.id, e.name, e.organizer, e.location, e.date, e.description,
	                  e.capacity, e.available_seats, e.category, e.created_at
	           FROM registrations r
	           JOIN events e ON e.id = r.event_id
	           WHERE r.user_id = ?
	           ORDER BY e.date ASC, r.id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RegistrationWithEvent, 0)
	for rows.Next() {
		var rec RegistrationWithEvent
		e := &rec.Event
		if err := rows.Scan(&rec.Status,
			&e.ID, &e.Name, &e.Organizer, &e.Location, &e.Date, &e.Description,
			&e.Capacity, &e.AvailableSeats, &e.Category, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
