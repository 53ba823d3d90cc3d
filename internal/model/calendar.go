package model

// EventType classifies a calendar event.
type EventType string

const (
	EventPeriod      EventType = "period"
	EventAnniversary EventType = "anniversary"
	EventBirthday    EventType = "birthday"
	EventCustom      EventType = "custom"
)

func (t EventType) Valid() bool {
	switch t {
	case EventPeriod, EventAnniversary, EventBirthday, EventCustom:
		return true
	}
	return false
}

// CalendarEvent is a shared couple event. Date is an ISO-8601 instant
// string stored as supplied; parsing happens only in derived views.
type CalendarEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Type      EventType `json:"type"`
	Notes     string    `json:"notes,omitempty"`
	Recurring bool      `json:"recurring,omitempty"`
}

// EventPatch carries the fields of a shallow-merge update. Nil fields
// are left untouched.
type EventPatch struct {
	Title     *string    `json:"title"`
	Date      *string    `json:"date"`
	Type      *EventType `json:"type"`
	Notes     *string    `json:"notes"`
	Recurring *bool      `json:"recurring"`
}
