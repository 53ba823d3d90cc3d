package handler

import (
	"encoding/json"
	"net/http"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/store"
)

type StatusHandler struct {
	statusStore *store.StatusStore
}

func NewStatusHandler(ss *store.StatusStore) *StatusHandler {
	return &StatusHandler{statusStore: ss}
}

type statusRequest struct {
	Status   string `json:"status"`
	Activity string `json:"activity"`
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.statusStore.State())
}

func (h *StatusHandler) SetMine(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.statusStore.SetMyStatus)
}

func (h *StatusHandler) SetPartner(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.statusStore.SetPartnerStatus)
}

func (h *StatusHandler) set(w http.ResponseWriter, r *http.Request, apply func(model.Status, string) error) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := apply(model.Status(req.Status), req.Activity); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.statusStore.State())
}
