// Package webjson holds the JSON response helpers shared by the API
// handlers. Every response body is either a payload or a
// {"message": "..."} object, optionally with per-field validation detail.
package webjson

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": msg} body with the given status.
func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, map[string]string{"message": msg})
}

// Validation writes a 400 with a message and per-field errors.
func Validation(w http.ResponseWriter, msg string, fields map[string]string) {
	Write(w, http.StatusBadRequest, map[string]any{
		"message": msg,
		"fields":  fields,
	})
}
