package utils

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// RespondJSON writes a JSON response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

// RespondError writes a JSON error body with the given status.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"error": message})
}
