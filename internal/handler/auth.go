package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/duetapp/duet/internal/store"
)

type AuthHandler struct {
	authStore *store.AuthStore
	logger    *slog.Logger
}

func NewAuthHandler(as *store.AuthStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authStore: as, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.authStore.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		h.logger.Warn("register failed", "email", req.Email, "error", err)
		writeStoreError(w, err)
		return
	}

	h.logger.Info("user registered", "email", req.Email)
	writeJSON(w, http.StatusCreated, h.authStore.State())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.authStore.Login(r.Context(), req.Email, req.Password); err != nil {
		h.logger.Warn("login failed", "email", req.Email, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.authStore.State())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authStore.Logout(); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

type connectRequest struct {
	Code string `json:"code"`
}

func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := h.authStore.ConnectPartner(r.Context(), req.Code); err != nil {
		h.logger.Warn("partner connect failed", "error", err)
		writeStoreError(w, err)
		return
	}

	h.logger.Info("partner linked")
	writeJSON(w, http.StatusOK, h.authStore.State())
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.authStore.State())
}
