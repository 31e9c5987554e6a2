package utils

import (
	"encoding/json"
	"net/http"

	"sevabook/faults"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}

// RespondWithFault reports a failed operation. Failures ride on HTTP 200 with
// a success flag; the message is the fault's client-facing text, with
// infrastructure detail collapsed to a generic one.
func RespondWithFault(w http.ResponseWriter, err error) {
	RespondWithJSON(w, http.StatusOK, M{"success": false, "message": faults.Message(err)})
}
