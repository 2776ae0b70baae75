// Package handlers exposes the risk analysis use cases over HTTP.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tudu-hope/credit-card-delinquency-check/internal/application/dto"
	appservice "github.com/Tudu-hope/credit-card-delinquency-check/internal/application/service"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/errors"
	"github.com/Tudu-hope/credit-card-delinquency-check/pkg/logger"
)

// RiskHandler serves the risk analysis endpoints.
type RiskHandler struct {
	portfolio    appservice.PortfolioAppService
	intervention appservice.InterventionAppService
	customer     appservice.CustomerAppService
	log          logger.Logger
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(
	portfolio appservice.PortfolioAppService,
	intervention appservice.InterventionAppService,
	customer appservice.CustomerAppService,
	log logger.Logger,
) *RiskHandler {
	return &RiskHandler{
		portfolio:    portfolio,
		intervention: intervention,
		customer:     customer,
		log:          log,
	}
}

// PortfolioSummary handles GET /api/v1/portfolio-summary.
func (h *RiskHandler) PortfolioSummary(c *gin.Context) {
	summary, err := h.portfolio.GetPortfolioSummary(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Signals handles GET /api/v1/signals.
func (h *RiskHandler) Signals(c *gin.Context) {
	stats, err := h.portfolio.GetSignalEffectiveness(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RiskDistribution handles GET /api/v1/risk-distribution.
func (h *RiskHandler) RiskDistribution(c *gin.Context) {
	dist, err := h.portfolio.GetRiskDistribution(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, dist)
}

// ScoreCustomer handles POST /api/v1/score-customer.
func (h *RiskHandler) ScoreCustomer(c *gin.Context) {
	var req dto.ScoreCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.SendError(c, errors.ErrValidation("invalid score request: "+err.Error()))
		return
	}

	resp, err := h.customer.ScoreCustomer(c.Request.Context(), &req)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Customers handles GET /api/v1/customers.
func (h *RiskHandler) Customers(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			dto.SendError(c, errors.ErrValidationf("invalid limit: %q", raw))
			return
		}
		limit = parsed
	}

	customers, err := h.customer.ListCustomers(c.Request.Context(), c.Query("tier"), limit)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// FeatureImportance handles GET /api/v1/feature-importance.
func (h *RiskHandler) FeatureImportance(c *gin.Context) {
	resp, err := h.customer.FeatureImportances(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InterventionROI handles GET /api/v1/intervention-roi.
func (h *RiskHandler) InterventionROI(c *gin.Context) {
	roi, err := h.intervention.CalculateROI(c.Request.Context())
	if err != nil {
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, roi)
}

// DashboardStats handles GET /api/v1/dashboard-stats, the combined view
// backing the dashboard: portfolio totals, ROI and the three strongest
// signals.
func (h *RiskHandler) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	portfolio, err := h.portfolio.GetPortfolioSummary(ctx)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	roi, err := h.intervention.CalculateROI(ctx)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	signals, err := h.portfolio.GetSignalEffectiveness(ctx)
	if err != nil {
		dto.SendError(c, err)
		return
	}
	if len(signals) > 3 {
		signals = signals[:3]
	}

	c.JSON(http.StatusOK, dto.DashboardStatsResponse{
		Portfolio:  portfolio,
		ROI:        roi,
		TopSignals: signals,
	})
}
