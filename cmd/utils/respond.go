package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes payload with the given status code.
func WriteJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// WriteError writes the standard {"message": ...} error body.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, map[string]string{"message": message})
}
