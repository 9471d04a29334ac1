package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

// NewHealthHandler creates the health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Handle reports service health.
func (h *HealthHandler) Handle(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
