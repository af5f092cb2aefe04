package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
)

// EventRepo is the event catalog. It owns every event field except
// available_seats, which is written only by the registration ledger.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to open their
// own transactions.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, name, organizer, location, date, description, capacity, available_seats, category, created_at`

func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
	var e model.Event
	err := row.Scan(&e.ID, &e.Name, &e.Organizer, &e.Location, &e.Date,
		&e.Description, &e.Capacity, &e.AvailableSeats, &e.Category, &e.CreatedAt)
	return e, err
}

// GetByID returns a single event or ErrEventNotFound when the ID does
// not resolve.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return model.Event{}, ErrEventNotFound
	}
	return e, err
}

// EventSearchQuery defines the optional, conjunctive filters for
// browsing the catalog. Zero values mean "no filter". Page/PageSize are
// optional; when PageSize is zero the full result set is returned.
type EventSearchQuery struct {
	Name     string
	Category string
	Location string
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	PageSize int
}

// Search returns events matching all supplied filters, ordered by
// scheduled date ascending. Substring filters are case-insensitive;
// date bounds are inclusive. With no filters it returns the whole
// catalog in the same order. The query is side-effect free.
func (r *EventRepo) Search(ctx context.Context, q EventSearchQuery) ([]model.Event, error) {
	where := []string{}
	args := []any{}

	if q.Name != "" {
		where = append(where, "LOWER(name) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Name)+"%")
	}
	if q.Category != "" {
		where = append(where, "LOWER(category) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Category)+"%")
	}
	if q.Location != "" {
		where = append(where, "LOWER(location) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Location)+"%")
	}
	if !q.DateFrom.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, q.DateFrom)
	}
	if !q.DateTo.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, q.DateTo)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + cond + ` ORDER BY date ASC, id ASC`
	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, q.PageSize, (page-1)*q.PageSize)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
