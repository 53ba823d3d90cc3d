package store

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/persistence"
)

// FoodState is the persisted state of the food randomizer. Selected
// holds a copy of the chosen entry, so removing the source choice
// never leaves the selection dangling.
type FoodState struct {
	Choices  []model.FoodChoice `json:"choices"`
	Selected *model.FoodChoice  `json:"selected_food"`
}

type FoodStore struct {
	mu    sync.Mutex
	state FoodState
	kv    persistence.Store

	// intn picks a uniform index; swapped out in tests for a
	// deterministic source.
	intn func(n int) int
}

func NewFoodStore(kv persistence.Store) (*FoodStore, error) {
	s := &FoodStore{kv: kv, intn: rand.IntN}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FoodStore) load() error {
	blob, ok, err := s.kv.Get(persistence.KeyFood)
	if err != nil {
		return fmt.Errorf("load food state: %w", err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(blob, &s.state); err != nil {
		return fmt.Errorf("decode food state: %w", err)
	}
	return nil
}

func (s *FoodStore) persist() error {
	blob, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode food state: %w", err)
	}
	if err := s.kv.Set(persistence.KeyFood, blob); err != nil {
		return fmt.Errorf("persist food state: %w", err)
	}
	return nil
}

// AddChoice appends a new choice with a fresh id. Duplicate names are
// allowed.
func (s *FoodStore) AddChoice(name, category string) (model.FoodChoice, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.FoodChoice{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	choice := model.FoodChoice{
		ID:       uuid.NewString(),
		Name:     name,
		Category: strings.TrimSpace(category),
	}
	s.state.Choices = append(s.state.Choices, choice)
	if err := s.persist(); err != nil {
		return model.FoodChoice{}, err
	}
	return choice, nil
}

// RemoveChoice removes by id; absent ids are a no-op with no state
// write. The selection is untouched either way since it holds a copy.
func (s *FoodStore) RemoveChoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.state.Choices {
		if c.ID == id {
			s.state.Choices = append(s.state.Choices[:i], s.state.Choices[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Randomize picks one choice uniformly at random and stores a copy of
// it as the selection. An empty pool leaves the selection unchanged
// and writes nothing.
func (s *FoodStore) Randomize() (*model.FoodChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Choices) == 0 {
		return nil, nil
	}
	picked := s.state.Choices[s.intn(len(s.state.Choices))]
	s.state.Selected = &picked
	if err := s.persist(); err != nil {
		return nil, err
	}
	result := picked
	return &result, nil
}

// ClearSelected drops the selection without touching the pool.
func (s *FoodStore) ClearSelected() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selected = nil
	return s.persist()
}

// State returns a snapshot: the choice slice is copied, and so is the
// selection.
func (s *FoodStore) State() FoodState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := FoodState{Choices: make([]model.FoodChoice, len(s.state.Choices))}
	copy(out.Choices, s.state.Choices)
	if s.state.Selected != nil {
		sel := *s.state.Selected
		out.Selected = &sel
	}
	return out
}
