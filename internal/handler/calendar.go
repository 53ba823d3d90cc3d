package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/store"
)

type CalendarHandler struct {
	calendarStore *store.CalendarStore
}

func NewCalendarHandler(cs *store.CalendarStore) *CalendarHandler {
	return &CalendarHandler{calendarStore: cs}
}

type eventRequest struct {
	Title     string `json:"title"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Notes     string `json:"notes"`
	Recurring bool   `json:"recurring"`
}

func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	events := h.calendarStore.Events()
	if events == nil {
		events = []model.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	event, err := h.calendarStore.AddEvent(req.Title, req.Date, model.EventType(req.Type), req.Notes, req.Recurring)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.EventPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	event, err := h.calendarStore.UpdateEvent(r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarStore.RemoveEvent(r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	upcoming := h.calendarStore.UpcomingEvents(time.Now().UTC())
	if upcoming == nil {
		upcoming = []store.Upcoming{}
	}
	writeJSON(w, http.StatusOK, upcoming)
}
