package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/persistence"
	"github.com/duetapp/duet/internal/recurrence"
)

// CalendarState is the persisted state of the calendar store. No
// ordering is stored; sorting is a display-time concern.
type CalendarState struct {
	Events []model.CalendarEvent `json:"events"`
}

type CalendarStore struct {
	mu    sync.Mutex
	state CalendarState
	kv    persistence.Store
}

func NewCalendarStore(kv persistence.Store) (*CalendarStore, error) {
	s := &CalendarStore{kv: kv}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CalendarStore) load() error {
	blob, ok, err := s.kv.Get(persistence.KeyCalendar)
	if err != nil {
		return fmt.Errorf("load calendar state: %w", err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(blob, &s.state); err != nil {
		return fmt.Errorf("decode calendar state: %w", err)
	}
	return nil
}

func (s *CalendarStore) persist() error {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode calendar state: %w", err)
	}
	if err := s.kv.Set(persistence.KeyCalendar, blob); err != nil {
		return fmt.Errorf("persist calendar state: %w", err)
	}
	return nil
}

// AddEvent appends a new event with a fresh id. The date string is
// stored as supplied; only derived views parse it.
func (s *CalendarStore) AddEvent(title, date string, typ model.EventType, notes string, recurring bool) (model.CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.CalendarEvent{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !typ.Valid() {
		return model.CalendarEvent{}, &ValidationError{Field: "type", Reason: "must be period, anniversary, birthday or custom"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := model.CalendarEvent{
		ID:        uuid.NewString(),
		Title:     title,
		Date:      date,
		Type:      typ,
		Notes:     notes,
		Recurring: recurring,
	}
	s.state.Events = append(s.state.Events, event)
	if err := s.persist(); err != nil {
		return model.CalendarEvent{}, err
	}
	return event, nil
}

// UpdateEvent shallow-merges the patch into the matching event. An
// unknown id is a no-op: nil event, no state write. A rejected patch
// leaves the event untouched either way.
func (s *CalendarStore) UpdateEvent(id string, patch model.EventPatch) (*model.CalendarEvent, error) {
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: "must be period, anniversary, birthday or custom"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Events {
		if s.state.Events[i].ID != id {
			continue
		}
		e := s.state.Events[i]
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.Notes != nil {
			e.Notes = *patch.Notes
		}
		if patch.Recurring != nil {
			e.Recurring = *patch.Recurring
		}
		s.state.Events[i] = e
		if err := s.persist(); err != nil {
			return nil, err
		}
		out := e
		return &out, nil
	}
	return nil, nil
}

// RemoveEvent removes by id; absent ids are a no-op.
func (s *CalendarStore) RemoveEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.state.Events {
		if e.ID == id {
			s.state.Events = append(s.state.Events[:i], s.state.Events[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Events returns a snapshot of the stored events.
func (s *CalendarStore) Events() []model.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CalendarEvent, len(s.state.Events))
	copy(out, s.state.Events)
	return out
}

// Upcoming is a derived view: each event projected to its next
// occurrence at or after now, sorted ascending. Events whose date does
// not parse as RFC 3339 are skipped, as are past one-off events.
type Upcoming struct {
	Event model.CalendarEvent `json:"event"`
	At    time.Time           `json:"at"`
}

func (s *CalendarStore) UpcomingEvents(now time.Time) []Upcoming {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Upcoming
	for _, e := range s.state.Events {
		date, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			continue
		}
		at, ok := recurrence.Project(date, now, e.Recurring)
		if !ok {
			continue
		}
		out = append(out, Upcoming{Event: e, At: at})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}
