package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raket-Swathi/bellcorp-event-app/internal/model"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/queue"
	"github.com/Raket-Swathi/bellcorp-event-app/internal/repository"
)

// fakeLedger is an in-memory RegistrationStore that mirrors the
// repository contract: per-event serialization, conditional seat
// decrement, at most one active registration per (user, event) and a
// capacity-bounded increment on cancel.
type fakeLedger struct {
	mu       sync.Mutex
	capacity map[uint64]int
	seats    map[uint64]int
	activeID map[[2]uint64]uint64
	nextID   uint64
	rows     []repository.RegistrationWithEvent
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		capacity: map[uint64]int{},
		seats:    map[uint64]int{},
		activeID: map[[2]uint64]uint64{},
	}
}

func (f *fakeLedger) addEvent(id uint64, capacity, available int) {
	f.capacity[id] = capacity
	f.seats[id] = available
}

func (f *fakeLedger) Register(ctx context.Context, userID, eventID uint64) (model.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seats[eventID]; !ok {
		return model.Registration{}, repository.ErrEventNotFound
	}
	if _, ok := f.activeID[[2]uint64{userID, eventID}]; ok {
		return model.Registration{}, repository.ErrAlreadyRegistered
	}
	if f.seats[eventID] <= 0 {
		return model.Registration{}, repository.ErrEventFull
	}
	f.seats[eventID]--
	f.nextID++
	f.activeID[[2]uint64{userID, eventID}] = f.nextID
	return model.Registration{
		ID:        f.nextID,
		UserID:    userID,
		EventID:   eventID,
		Status:    model.StatusRegistered,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeLedger) Cancel(ctx context.Context, userID, eventID uint64) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seats[eventID]; !ok {
		return 0, repository.ErrEventNotFound
	}
	regID, ok := f.activeID[[2]uint64{userID, eventID}]
	if !ok {
		return 0, repository.ErrRegistrationNotFound
	}
	delete(f.activeID, [2]uint64{userID, eventID})
	if f.seats[eventID] < f.capacity[eventID] {
		f.seats[eventID]++
	}
	return regID, nil
}

func (f *fakeLedger) ListByUser(ctx context.Context, userID uint64) ([]repository.RegistrationWithEvent, error) {
	return f.rows, nil
}

func (f *fakeLedger) seatsFor(eventID uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seats[eventID]
}

func registrationCtx(e *echo.Echo, method, eventID string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/registrations/"+eventID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("eventId")
	c.SetParamValues(eventID)
	if userID > 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestCreateRegistration_Success(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 100, 100)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var reg model.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, uint64(7), reg.UserID)
	assert.Equal(t, uint64(1), reg.EventID)
	assert.Equal(t, model.StatusRegistered, reg.Status)
	assert.Equal(t, 99, ledger.seatsFor(1))
}

func TestCreateRegistration_Unauthorized(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 10, 10)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 0)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 10, ledger.seatsFor(1))
}

func TestCreateRegistration_EventNotFound(t *testing.T) {
	h := NewRegistrationHandler(newFakeLedger(), nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "99", 7)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestCreateRegistration_EventFull(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 5, 0)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event is full")
}

// Registering twice without cancelling decrements the seat pool exactly
// once and fails the second call.
func TestCreateRegistration_Twice(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 100, 100)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Already registered")
	assert.Equal(t, 99, ledger.seatsFor(1))
}

// Register then cancel returns the seat pool to its starting value;
// cancelling again fails without a second increment.
func TestCancelRegistration_RoundTripAndDoubleCancel(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 50, 50)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 49, ledger.seatsFor(1))

	c, rec = registrationCtx(e, http.MethodDelete, "1", 7)
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration cancelled")
	assert.Equal(t, 50, ledger.seatsFor(1))

	c, rec = registrationCtx(e, http.MethodDelete, "1", 7)
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Registration not found")
	assert.Equal(t, 50, ledger.seatsFor(1))
}

func TestCancelRegistration_EventNotFound(t *testing.T) {
	h := NewRegistrationHandler(newFakeLedger(), nil, nil)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodDelete, "99", 7)
	require.NoError(t, h.Cancel(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Two users race for the last seat: exactly one wins, the other gets
// EventFull, and the pool ends at zero.
func TestCreateRegistration_LastSeatRace(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 1, 1)
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	codes := make(chan int, 2)
	var wg sync.WaitGroup
	for _, userID := range []uint64{7, 8} {
		wg.Add(1)
		go func(uid uint64) {
			defer wg.Done()
			c, rec := registrationCtx(e, http.MethodPost, "1", uid)
			if err := h.Create(c); err != nil {
				t.Errorf("handler error: %v", err)
				return
			}
			codes <- rec.Code
		}(userID)
	}
	wg.Wait()
	close(codes)

	var created, rejected int
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 0, ledger.seatsFor(1))
}

func TestMine_Partitions(t *testing.T) {
	now := time.Now().UTC()
	ledger := newFakeLedger()
	ledger.rows = []repository.RegistrationWithEvent{
		{Status: model.StatusRegistered, Event: model.Event{ID: 1, Name: "Past Meetup", Date: now.Add(-48 * time.Hour)}},
		{Status: model.StatusCancelled, Event: model.Event{ID: 2, Name: "Dropped Conf", Date: now.Add(24 * time.Hour)}},
		{Status: model.StatusRegistered, Event: model.Event{ID: 3, Name: "Future Summit", Date: now.Add(72 * time.Hour)}},
	}
	h := NewRegistrationHandler(ledger, nil, nil)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/registrations/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(7))

	require.NoError(t, h.Mine(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Upcoming  []model.Event `json:"upcoming"`
		Past      []model.Event `json:"past"`
		Cancelled []model.Event `json:"cancelled"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Upcoming, 1)
	require.Len(t, out.Past, 1)
	require.Len(t, out.Cancelled, 1)
	assert.Equal(t, "Future Summit", out.Upcoming[0].Name)
	assert.Equal(t, "Past Meetup", out.Past[0].Name)
	assert.Equal(t, "Dropped Conf", out.Cancelled[0].Name)
}

func TestPartitionRegistrations(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	rows := []repository.RegistrationWithEvent{
		{Status: model.StatusRegistered, Event: model.Event{ID: 1, Date: now.Add(-time.Hour)}},
		{Status: model.StatusRegistered, Event: model.Event{ID: 2, Date: now}}, // exactly now counts as past
		{Status: model.StatusRegistered, Event: model.Event{ID: 3, Date: now.Add(time.Hour)}},
		{Status: model.StatusCancelled, Event: model.Event{ID: 4, Date: now.Add(-time.Hour)}},
		{Status: model.StatusCancelled, Event: model.Event{ID: 5, Date: now.Add(time.Hour)}},
	}

	d := partitionRegistrations(rows, now)

	ids := func(events []model.Event) []uint64 {
		out := make([]uint64, 0, len(events))
		for _, e := range events {
			out = append(out, e.ID)
		}
		return out
	}
	assert.Equal(t, []uint64{3}, ids(d.Upcoming))
	assert.Equal(t, []uint64{1, 2}, ids(d.Past))
	assert.Equal(t, []uint64{4, 5}, ids(d.Cancelled))
}

func TestPartitionRegistrations_Empty(t *testing.T) {
	d := partitionRegistrations(nil, time.Now())
	assert.NotNil(t, d.Upcoming)
	assert.NotNil(t, d.Past)
	assert.NotNil(t, d.Cancelled)
	assert.Empty(t, d.Upcoming)
}

// A successful registration publishes one activity event enriched with
// catalog details.
func TestCreateRegistration_PublishesActivity(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 100, 100)
	events := &mockEventStore{
		getByIDFn: func(ctx context.Context, id uint64) (model.Event, error) {
			return model.Event{ID: id, Name: "React Conference", Location: "Hyderabad",
				Date: time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC), AvailableSeats: 99}, nil
		},
	}

	published := make(chan queue.RegistrationActivityEvent, 1)
	publish := func(ctx context.Context, ev queue.RegistrationActivityEvent) error {
		published <- ev
		return nil
	}

	h := NewRegistrationHandler(ledger, events, publish)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	select {
	case ev := <-published:
		assert.Equal(t, model.StatusRegistered, ev.Action)
		assert.Equal(t, uint64(7), ev.UserID)
		assert.Equal(t, uint64(1), ev.EventID)
		assert.Equal(t, "React Conference", ev.EventName)
		assert.Equal(t, 99, ev.SeatsLeft)
	case <-time.After(time.Second):
		t.Fatal("no activity event published")
	}
}

// Cancelling publishes an activity event that carries the ID of the
// registration that was cancelled, not a zero placeholder.
func TestCancelRegistration_PublishesActivity(t *testing.T) {
	ledger := newFakeLedger()
	ledger.addEvent(1, 100, 100)
	events := &mockEventStore{
		getByIDFn: func(ctx context.Context, id uint64) (model.Event, error) {
			return model.Event{ID: id, Name: "React Conference"}, nil
		},
	}

	published := make(chan queue.RegistrationActivityEvent, 2)
	publish := func(ctx context.Context, ev queue.RegistrationActivityEvent) error {
		published <- ev
		return nil
	}

	h := NewRegistrationHandler(ledger, events, publish)
	e := echo.New()

	c, rec := registrationCtx(e, http.MethodPost, "1", 7)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg model.Registration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

	c, rec = registrationCtx(e, http.MethodDelete, "1", 7)
	require.NoError(t, h.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got queue.RegistrationActivityEvent
	deadline := time.After(time.Second)
	for got.Action != model.StatusCancelled {
		select {
		case got = <-published:
		case <-deadline:
			t.Fatal("no cancellation event published")
		}
	}
	assert.Equal(t, reg.ID, got.RegistrationID)
	assert.Equal(t, uint64(7), got.UserID)
	assert.Equal(t, uint64(1), got.EventID)
}
