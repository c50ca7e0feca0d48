package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint.
// Method filtering is the router's job; this always answers GET.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
