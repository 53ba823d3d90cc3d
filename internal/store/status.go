package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/persistence"
)

// StatusState is the full persisted state of the status store: one
// entry per side, each with its own busy timestamp and activity.
type StatusState struct {
	Mine    model.StatusEntry `json:"my_status"`
	Partner model.StatusEntry `json:"partner_status"`
}

// StatusStore holds both sides' presence. Mutations are purely local;
// nothing here talks to a remote collaborator.
type StatusStore struct {
	mu    sync.Mutex
	state StatusState
	kv    persistence.Store
	now   func() time.Time
}

func NewStatusStore(kv persistence.Store) (*StatusStore, error) {
	s := &StatusStore{
		kv:  kv,
		now: time.Now,
		state: StatusState{
			Mine:    model.StatusEntry{State: model.StatusFree},
			Partner: model.StatusEntry{State: model.StatusFree},
		},
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StatusStore) load() error {
	blob, ok, err := s.kv.Get(persistence.KeyStatus)
	if err != nil {
		return fmt.Errorf("load status state: %w", err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(blob, &s.state); err != nil {
		return fmt.Errorf("decode status state: %w", err)
	}
	return nil
}

func (s *StatusStore) persist() error {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode status state: %w", err)
	}
	if err := s.kv.Set(persistence.KeyStatus, blob); err != nil {
		return fmt.Errorf("persist status state: %w", err)
	}
	return nil
}

// SetMyStatus updates the local side. Busy stamps BusySince and keeps
// the activity label; free clears both.
func (s *StatusStore) SetMyStatus(status model.Status, activity string) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be free or busy"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mine = model.NewStatusEntry(status, activity, s.now())
	return s.persist()
}

// SetPartnerStatus applies the same mutation to the partner copy.
func (s *StatusStore) SetPartnerStatus(status model.Status, activity string) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be free or busy"}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Partner = model.NewStatusEntry(status, activity, s.now())
	return s.persist()
}

// State returns a snapshot of both entries.
func (s *StatusStore) State() StatusState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
