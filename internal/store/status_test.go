package store

import (
	"testing"
	"time"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/persistence"
)

func setupStatusStore(t *testing.T) (*StatusStore, *persistence.MemoryStore) {
	t.Helper()
	kv := persistence.NewMemoryStore()
	s, err := NewStatusStore(kv)
	if err != nil {
		t.Fatalf("new status store: %v", err)
	}
	return s, kv
}

func TestSetMyStatusBusy(t *testing.T) {
	s, _ := setupStatusStore(t)
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.SetMyStatus(model.StatusBusy, "Cooking"); err != nil {
		t.Fatalf("set busy: %v", err)
	}

	state := s.State()
	if state.Mine.State != model.StatusBusy {
		t.Errorf("status = %q, want busy", state.Mine.State)
	}
	if state.Mine.BusySince == nil || !state.Mine.BusySince.Equal(now) {
		t.Errorf("busy_since = %v, want %v", state.Mine.BusySince, now)
	}
	if state.Mine.BusyActivity != "Cooking" {
		t.Errorf("activity = %q, want %q", state.Mine.BusyActivity, "Cooking")
	}
}

func TestSetMyStatusFreeClearsBusyFields(t *testing.T) {
	s, _ := setupStatusStore(t)

	if err := s.SetMyStatus(model.StatusBusy, "Cooking"); err != nil {
		t.Fatalf("set busy: %v", err)
	}
	if err := s.SetMyStatus(model.StatusFree, ""); err != nil {
		t.Fatalf("set free: %v", err)
	}

	state := s.State()
	if state.Mine.State != model.StatusFree {
		t.Errorf("status = %q, want free", state.Mine.State)
	}
	if state.Mine.BusySince != nil {
		t.Errorf("busy_since = %v, want nil", state.Mine.BusySince)
	}
	if state.Mine.BusyActivity != "" {
		t.Errorf("activity = %q, want empty", state.Mine.BusyActivity)
	}
}

func TestSetMyStatusFreeIgnoresActivity(t *testing.T) {
	s, _ := setupStatusStore(t)

	if err := s.SetMyStatus(model.StatusFree, "Sleeping"); err != nil {
		t.Fatalf("set free: %v", err)
	}
	if got := s.State().Mine.BusyActivity; got != "" {
		t.Errorf("activity = %q, want empty for free status", got)
	}
}

func TestSetPartnerStatusIsIndependent(t *testing.T) {
	s, _ := setupStatusStore(t)

	if err := s.SetMyStatus(model.StatusBusy, "Cooking"); err != nil {
		t.Fatalf("set mine: %v", err)
	}
	if err := s.SetPartnerStatus(model.StatusBusy, "Gym"); err != nil {
		t.Fatalf("set partner: %v", err)
	}

	state := s.State()
	if state.Mine.BusyActivity != "Cooking" {
		t.Errorf("my activity = %q, want Cooking", state.Mine.BusyActivity)
	}
	if state.Partner.BusyActivity != "Gym" {
		t.Errorf("partner activity = %q, want Gym", state.Partner.BusyActivity)
	}
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	s, kv := setupStatusStore(t)

	err := s.SetMyStatus(model.Status("away"), "")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if kv.Writes() != 0 {
		t.Errorf("writes = %d, want 0 for rejected mutation", kv.Writes())
	}
}

func TestStatusMutationPersists(t *testing.T) {
	s, kv := setupStatusStore(t)

	if err := s.SetMyStatus(model.StatusBusy, "Errands"); err != nil {
		t.Fatalf("set busy: %v", err)
	}
	if kv.Writes() != 1 {
		t.Errorf("writes = %d, want 1", kv.Writes())
	}

	// A fresh store over the same KV hydrates the persisted state.
	reloaded, err := NewStatusStore(kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.State().Mine.BusyActivity != "Errands" {
		t.Error("persisted state not restored on hydration")
	}
}
