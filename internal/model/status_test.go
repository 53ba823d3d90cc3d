package model

import (
	"testing"
	"time"
)

func TestNewStatusEntryBusy(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	e := NewStatusEntry(StatusBusy, "Cooking", now)
	if e.State != StatusBusy {
		t.Errorf("state = %q, want busy", e.State)
	}
	if e.BusySince == nil || !e.BusySince.Equal(now) {
		t.Errorf("busy_since = %v, want %v", e.BusySince, now)
	}
	if e.BusyActivity != "Cooking" {
		t.Errorf("activity = %q, want Cooking", e.BusyActivity)
	}
}

func TestNewStatusEntryFreeDropsActivity(t *testing.T) {
	e := NewStatusEntry(StatusFree, "Cooking", time.Now())
	if e.BusySince != nil {
		t.Errorf("busy_since = %v, want nil", e.BusySince)
	}
	if e.BusyActivity != "" {
		t.Errorf("activity = %q, want empty", e.BusyActivity)
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusFree.Valid() || !StatusBusy.Valid() {
		t.Error("free and busy must be valid")
	}
	if Status("away").Valid() {
		t.Error("unknown status must be invalid")
	}
}

func TestEventTypeValid(t *testing.T) {
	for _, typ := range []EventType{EventPeriod, EventAnniversary, EventBirthday, EventCustom} {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}
	if EventType("holiday").Valid() {
		t.Error("unknown type must be invalid")
	}
}
