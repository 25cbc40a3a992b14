package handler

import (
	"net/http"

	"github.com/partyroom/partyroom/internal/api/response"
)

// Health handles GET /healthz
func Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
