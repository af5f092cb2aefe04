package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/repository"
)

// EventStore is the slice of the event catalog the handlers need.
// *repository.EventRepo satisfies it; tests substitute mocks.
type EventStore interface {
	Search(ctx context.Context, q repository.EventSearchQuery) ([]model.Event, error)
	GetByID(ctx context.Context, id uint64) (model.Event, error)
}

// EventHandler serves the public catalog browse endpoints. These are
// read only and require no authentication.
type EventHandler struct {
	Events EventStore
}

func NewEventHandler(events EventStore) *EventHandler {
	return &EventHandler{Events: events}
}

// parseDateParam accepts RFC3339 timestamps or plain YYYY-MM-DD dates,
// the two formats the browse UI sends.
func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// List handles GET /events. All query filters are optional and combine
// with AND semantics: search (name substring), category, location,
// dateFrom, dateTo. Optional page/pageSize paginate; without them the
// full catalog is returned, always sorted by date ascending.
func (h *EventHandler) List(c echo.Context) error {
	q := repository.EventSearchQuery{
		Name:     c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	}
	if s := c.QueryParam("dateFrom"); s != "" {
		t, err := parseDateParam(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dateFrom"})
		}
		q.DateFrom = t
	}
	if s := c.QueryParam("dateTo"); s != "" {
		t, err := parseDateParam(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid dateTo"})
		}
		q.DateTo = t
	}
	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			q.Page = n
		}
	}
	if s := c.QueryParam("pageSize"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			q.PageSize = n
		}
	}

	events, err := h.Events.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid event id"})
	}
	event, err := h.Events.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	return c.JSON(http.StatusOK, event)
}
