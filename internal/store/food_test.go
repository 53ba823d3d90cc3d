package store

import (
	"testing"

	"github.com/duetapp/duet/internal/persistence"
)

func setupFoodStore(t *testing.T) (*FoodStore, *persistence.MemoryStore) {
	t.Helper()
	kv := persistence.NewMemoryStore()
	s, err := NewFoodStore(kv)
	if err != nil {
		t.Fatalf("new food store: %v", err)
	}
	return s, kv
}

func TestAddChoice(t *testing.T) {
	s, _ := setupFoodStore(t)

	c, err := s.AddChoice("Sushi", "japanese")
	if err != nil {
		t.Fatalf("add choice: %v", err)
	}
	if c.ID == "" {
		t.Error("expected non-empty id")
	}
	if c.Name != "Sushi" {
		t.Errorf("name = %q, want Sushi", c.Name)
	}

	state := s.State()
	if len(state.Choices) != 1 {
		t.Fatalf("choices = %d, want 1", len(state.Choices))
	}
}

func TestAddChoiceDuplicateNamesAllowed(t *testing.T) {
	s, _ := setupFoodStore(t)

	a, _ := s.AddChoice("Pizza", "")
	b, err := s.AddChoice("Pizza", "")
	if err != nil {
		t.Fatalf("add duplicate name: %v", err)
	}
	if a.ID == b.ID {
		t.Error("duplicate names must still get distinct ids")
	}
}

func TestAddChoiceEmptyName(t *testing.T) {
	s, _ := setupFoodStore(t)

	if _, err := s.AddChoice("  ", ""); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}

func TestAddRemoveLengthAccounting(t *testing.T) {
	s, _ := setupFoodStore(t)

	a, _ := s.AddChoice("Pizza", "")
	s.AddChoice("Tacos", "")
	s.AddChoice("Ramen", "")

	if err := s.RemoveChoice(a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveChoice("no-such-id"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}

	if got := len(s.State().Choices); got != 2 {
		t.Errorf("choices = %d, want 2", got)
	}
}

func TestRemoveChoiceAbsentIsNoWrite(t *testing.T) {
	s, kv := setupFoodStore(t)

	s.AddChoice("Pizza", "")
	before := kv.Writes()

	if err := s.RemoveChoice("no-such-id"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if kv.Writes() != before {
		t.Error("removing an absent id must not write state")
	}
}

func TestRandomizeEmptyPool(t *testing.T) {
	s, kv := setupFoodStore(t)

	picked, err := s.Randomize()
	if err != nil {
		t.Fatalf("randomize: %v", err)
	}
	if picked != nil {
		t.Errorf("picked = %v, want nil", picked)
	}
	if kv.Writes() != 0 {
		t.Errorf("writes = %d, want 0 on empty pool", kv.Writes())
	}
}

func TestRandomizePicksPresentChoice(t *testing.T) {
	s, _ := setupFoodStore(t)

	ids := map[string]bool{}
	for _, name := range []string{"Pizza", "Tacos", "Ramen", "Curry"} {
		c, _ := s.AddChoice(name, "")
		ids[c.ID] = true
	}

	for i := 0; i < 20; i++ {
		picked, err := s.Randomize()
		if err != nil {
			t.Fatalf("randomize: %v", err)
		}
		if picked == nil || !ids[picked.ID] {
			t.Fatalf("picked %v, not a present choice", picked)
		}
	}
}

func TestRandomizeDeterministicWithSeededSource(t *testing.T) {
	s, _ := setupFoodStore(t)
	s.intn = func(n int) int { return 2 % n }

	s.AddChoice("Pizza", "")
	s.AddChoice("Tacos", "")
	third, _ := s.AddChoice("Ramen", "")

	picked, err := s.Randomize()
	if err != nil {
		t.Fatalf("randomize: %v", err)
	}
	if picked.ID != third.ID {
		t.Errorf("picked %q, want %q", picked.Name, third.Name)
	}
}

func TestSelectionSurvivesRemoval(t *testing.T) {
	s, _ := setupFoodStore(t)
	s.intn = func(n int) int { return 0 }

	first, _ := s.AddChoice("Pizza", "")
	if _, err := s.Randomize(); err != nil {
		t.Fatalf("randomize: %v", err)
	}
	if err := s.RemoveChoice(first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	state := s.State()
	if state.Selected == nil || state.Selected.Name != "Pizza" {
		t.Errorf("selection = %v, want copied Pizza entry", state.Selected)
	}
}

func TestClearSelected(t *testing.T) {
	s, _ := setupFoodStore(t)

	s.AddChoice("Pizza", "")
	if _, err := s.Randomize(); err != nil {
		t.Fatalf("randomize: %v", err)
	}
	if err := s.ClearSelected(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	state := s.State()
	if state.Selected != nil {
		t.Error("selection should be nil after clear")
	}
	if len(state.Choices) != 1 {
		t.Error("clear must not touch the pool")
	}
}

func TestFoodStateHydration(t *testing.T) {
	s, kv := setupFoodStore(t)
	s.AddChoice("Pizza", "italian")

	reloaded, err := NewFoodStore(kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reloaded.State().Choices); got != 1 {
		t.Errorf("choices after reload = %d, want 1", got)
	}
}
