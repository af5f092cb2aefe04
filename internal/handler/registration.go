package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/queue"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/repository"
)

// RegistrationStore is the slice of the registration ledger the
// handlers need. *repository.RegistrationRepo satisfies it; tests
// substitute mocks.
type RegistrationStore interface {
	Register(ctx context.Context, userID, eventID uint64) (model.Registration, error)
	Cancel(ctx context.Context, userID, eventID uint64) (uint64, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.RegistrationWithEvent, error)
}

// ActivityPublisher forwards ledger activity to the message broker.
// A nil publisher disables publishing.
type ActivityPublisher func(ctx context.Context, ev queue.RegistrationActivityEvent) error

// RegistrationHandler serves the authenticated registration endpoints.
// All methods assume JWT middleware has run; they return 401 when the
// user ID cannot be extracted from the context. The seat-accounting
// guarantees live in the store, not here: the handler only validates
// input and maps sentinel errors onto HTTP responses.
type RegistrationHandler struct {
	Registrations RegistrationStore
	Events        EventStore
	Publish       ActivityPublisher
}

func NewRegistrationHandler(regs RegistrationStore, events EventStore, publish ActivityPublisher) *RegistrationHandler {
	return &RegistrationHandler{Registrations: regs, Events: events, Publish: publish}
}

// Create handles POST /registrations/:eventId. Exactly one seat is
// consumed per successful call; a second call for the same pair fails
// with 400 rather than silently succeeding.
func (h *RegistrationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}

	reg, err := h.Registrations.Register(c.Request().Context(), userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, repository.ErrEventFull):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Event is full"})
		case errors.Is(err, repository.ErrAlreadyRegistered):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Already registered for this event"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	h.publishActivity(c.Request().Context(), reg.ID, model.StatusRegistered, userID, eventID)

	return c.JSON(http.StatusCreated, reg)
}

// Cancel handles DELETE /registrations/:eventId. Cancelling twice fails
// on the second call so the seat is returned to the pool exactly once.
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}
	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}

	regID, err := h.Registrations.Cancel(c.Request().Context(), userID, eventID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		case errors.Is(err, repository.ErrRegistrationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Registration not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	h.publishActivity(c.Request().Context(), regID, model.StatusCancelled, userID, eventID)

	return c.JSON(http.StatusOK, echo.Map{"message": "Registration cancelled"})
}

// dashboard is the response shape of GET /registrations/me.
type dashboard struct {
	Upcoming  []model.Event `json:"upcoming"`
	Past      []model.Event `json:"past"`
	Cancelled []model.Event `json:"cancelled"`
}

// Mine handles GET /registrations/me: the user's registrations joined
// with their events, partitioned for the dashboard.
func (h *RegistrationHandler) Mine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized, no token"})
	}

	rows, err := h.Registrations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, partitionRegistrations(rows, time.Now().UTC()))
}

// partitionRegistrations splits a user's registration records into the
// three disjoint dashboard lists: cancelled records land in cancelled
// regardless of date; active records are upcoming when the event is
// strictly in the future of now, past otherwise. Input order (event
// date ascending) is preserved within each list.
func partitionRegistrations(rows []repository.RegistrationWithEvent, now time.Time) dashboard {
	d := dashboard{
		Upcoming:  []model.Event{},
		Past:      []model.Event{},
		Cancelled: []model.Event{},
	}
	for _, rec := range rows {
		switch {
		case rec.Status == model.StatusCancelled:
			d.Cancelled = append(d.Cancelled, rec.Event)
		case rec.Event.Date.After(now):
			d.Upcoming = append(d.Upcoming, rec.Event)
		default:
			d.Past = append(d.Past, rec.Event)
		}
	}
	return d
}

// publishActivity hands the committed ledger change to the broker in
// the background. Failures only affect the audit trail, never the
// request, so the error is ignored beyond the publisher's own logging.
func (h *RegistrationHandler) publishActivity(ctx context.Context, regID uint64, action string, userID, eventID uint64) {
	if h.Publish == nil {
		return
	}
	ev := queue.RegistrationActivityEvent{
		RegistrationID: regID,
		Action:         action,
		UserID:         userID,
		EventID:        eventID,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if h.Events != nil {
		if event, err := h.Events.GetByID(ctx, eventID); err == nil {
			ev.EventName = event.Name
			ev.Location = event.Location
			ev.ScheduledAt = event.Date.UTC().Format(time.RFC3339)
			ev.SeatsLeft = event.AvailableSeats
		}
	}
	go func() {
		_ = h.Publish(context.WithoutCancel(ctx), ev)
	}()
}
