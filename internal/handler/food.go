package handler

import (
	"encoding/json"
	"net/http"

	"github.com/duetapp/duet/internal/store"
)

type FoodHandler struct {
	foodStore *store.FoodStore
}

func NewFoodHandler(fs *store.FoodStore) *FoodHandler {
	return &FoodHandler{foodStore: fs}
}

type foodChoiceRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.foodStore.State())
}

func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req foodChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	choice, err := h.foodStore.AddChoice(req.Name, req.Category)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, choice)
}

func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.foodStore.RemoveChoice(r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *FoodHandler) Randomize(w http.ResponseWriter, r *http.Request) {
	picked, err := h.foodStore.Randomize()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if picked == nil {
		writeJSON(w, http.StatusOK, map[string]any{"selected": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": picked})
}

func (h *FoodHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.foodStore.ClearSelected(); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
