package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/application/service"
)

// HealthHandler provides the health check endpoint.
type HealthHandler struct {
	customer appservice.CustomerAppService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(customer appservice.CustomerAppService) *HealthHandler {
	return &HealthHandler{customer: customer}
}

// HealthCheck handles GET /health. The service reports healthy whenever it
// can answer; data and model readiness are separate flags so a degraded
// deployment is visible without failing liveness probes.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, h.customer.Health(c.Request.Context()))
}
