package app

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
)

// writeJSON encodes v with the given status and logs encoding failures
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// parseCount reads an optional positive integer query value bounded by limit
func parseCount(raw string, fallback, limit int) (int, bool) {
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > limit {
		return 0, false
	}
	return n, true
}
