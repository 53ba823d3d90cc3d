package model

import "time"

// Status is the ephemeral presence indicator shared between partners.
type Status string

const (
	StatusFree Status = "free"
	StatusBusy Status = "busy"
)

func (s Status) Valid() bool {
	return s == StatusFree || s == StatusBusy
}

// StatusEntry is one side's presence: the status itself plus the moment
// it turned busy and what the person is busy with. BusySince is non-nil
// exactly when State is busy, and BusyActivity is empty when free.
type StatusEntry struct {
	State        Status     `json:"status"`
	BusySince    *time.Time `json:"busy_since"`
	BusyActivity string     `json:"busy_activity"`
}

// NewStatusEntry derives all three fields from a single input so the
// busy/BusySince pairing can never be set inconsistently by callers.
func NewStatusEntry(state Status, activity string, now time.Time) StatusEntry {
	if state == StatusBusy {
		return StatusEntry{State: StatusBusy, BusySince: &now, BusyActivity: activity}
	}
	return StatusEntry{State: StatusFree, BusySince: nil, BusyActivity: ""}
}
