package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the standard format for JSON error responses.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// HealthHandler answers liveness probes.
type HealthHandler struct {
	version string
}

// NewHealthHandler creates a HealthHandler reporting version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// HealthGet reports that the server is up. It does not contact the API.
func (h *HealthHandler) HealthGet(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}
