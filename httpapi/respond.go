package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"sigil/domain/entities"
	"sigil/service"

	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors to status codes. Validation
// failures and duplicates are the caller's fault; anything unclassified
// is an upstream or storage failure.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMessage),
		errors.Is(err, service.ErrExpiredMessage),
		errors.Is(err, service.ErrInvalidSignature):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotHolder):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, entities.ErrAlreadyCheckedIn):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrNoPendingRewards),
		errors.Is(err, entities.ErrDayNotSettled):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrClaimNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Errorf("Request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
