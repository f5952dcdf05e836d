package utils

import (
	"encoding/json"
	"net/http"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondSuccess writes the {"success": true, ...} envelope the clients expect.
// Extra payload fields are merged alongside the success flag.
func RespondSuccess(w http.ResponseWriter, statusCode int, payload map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	RespondWithJSON(w, statusCode, body)
}

// RespondError writes the {"success": false, "message": ...} envelope.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}

type M map[string]interface{}
