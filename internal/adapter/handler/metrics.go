package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealsense/dealsense/internal/usecase/analytics"
)

// Metrics serves the read-side aggregate endpoints
type Metrics struct {
	service *analytics.Service
	logger  *zap.Logger
}

// NewMetrics creates a new metrics handler
func NewMetrics(service *analytics.Service, logger *zap.Logger) *Metrics {
	return &Metrics{service: service, logger: logger}
}

// GET /v1/metrics/overview
func (h *Metrics) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, overview)
}

// GET /v1/metrics/funnel
func (h *Metrics) Funnel(c echo.Context) error {
	funnel, err := h.service.Funnel(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, funnel)
}

// GET /v1/metrics/monthly-conversion
func (h *Metrics) MonthlyConversion(c echo.Context) error {
	series, err := h.service.MonthlyConversion(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, series)
}

// GET /v1/metrics/heatmap
func (h *Metrics) Heatmap(c echo.Context) error {
	cells, err := h.service.Heatmap(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, cells)
}

// GET /v1/metrics/use-cases?status=all|closed|open
func (h *Metrics) UseCases(c echo.Context) error {
	counts, err := h.service.UseCaseDistribution(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// GET /v1/metrics/pains
func (h *Metrics) Pains(c echo.Context) error {
	counts, err := h.service.PainDistribution(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// GET /v1/metrics/pains/available
func (h *Metrics) AvailablePains(c echo.Context) error {
	labels, err := h.service.AvailablePains(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, labels)
}

// GET /v1/metrics/objections/available
func (h *Metrics) AvailableObjections(c echo.Context) error {
	labels, err := h.service.AvailableObjections(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, labels)
}

// GET /v1/metrics/sentiment
func (h *Metrics) Sentiment(c echo.Context) error {
	points, err := h.service.SentimentConversion(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, points)
}

// GET /v1/metrics/sellers
func (h *Metrics) Sellers(c echo.Context) error {
	conversions, err := h.service.SellerConversion(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, conversions)
}

// GET /v1/metrics/origins
func (h *Metrics) Origins(c echo.Context) error {
	counts, err := h.service.OriginDistribution(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, counts)
}

// GET /v1/metrics/automatization
func (h *Metrics) Automatization(c echo.Context) error {
	outcomes, err := h.service.AutomatizationOutcomes(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, outcomes)
}
