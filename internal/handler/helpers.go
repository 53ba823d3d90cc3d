package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/duetapp/duet/internal/remote"
	"github.com/duetapp/duet/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps the store error taxonomy onto HTTP statuses:
// validation -> 400, unknown code -> 404, bad credentials -> 401,
// remote failures -> 502, anything else -> 500.
func writeStoreError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Error()})
	case errors.Is(err, store.ErrInvalidPartnerCode):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Invalid partner code"})
	case errors.Is(err, store.ErrNotAuthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	case errors.Is(err, remote.ErrBadCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": remote.ErrBadCredentials.Error()})
	case errors.Is(err, remote.ErrEmailInUse), errors.Is(err, remote.ErrWeakPassword):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		var re *store.RemoteError
		if errors.As(err, &re) {
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": re.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
