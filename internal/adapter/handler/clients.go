package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	clientsdto "github.com/dealsense/dealsense/internal/adapter/dto/clients"
	"github.com/dealsense/dealsense/internal/usecase/analytics"
	"github.com/dealsense/dealsense/internal/usecase/clients"
)

// Clients handles client HTTP requests
type Clients struct {
	service   *clients.Service
	analytics *analytics.Service
	logger    *zap.Logger
}

// NewClients creates a new clients handler
func NewClients(service *clients.Service, analyticsSvc *analytics.Service, logger *zap.Logger) *Clients {
	return &Clients{service: service, analytics: analyticsSvc, logger: logger}
}

// Upsert resolves or creates a client identity
// POST /v1/clients
func (h *Clients) Upsert(c echo.Context) error {
	var req clientsdto.UpsertClientRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidArgument("invalid request body"))
	}

	client, created, err := h.service.Upsert(c.Request().Context(), clients.UpsertInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, client)
}

// List returns clients filtered by seller and relative date window,
// with meetings and classifications attached
// GET /v1/clients?seller=...&window=7d|30d|90d|all
func (h *Clients) List(c echo.Context) error {
	filter := analytics.ClientFilter{
		Seller: c.QueryParam("seller"),
		Window: c.QueryParam("window"),
	}

	result, err := h.analytics.ListClients(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get returns one client with meetings and classifications
// GET /v1/clients/:id
func (h *Clients) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	client, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, client)
}
