package handler

import "net/http"

// healthResponse is the one endpoint that skips the data envelope: the
// message sits next to ok, matching what uptime checks expect.
type healthResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// HandleHealth handles GET /api/health requests.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Message: "API Periferia Social operativa"})
}
