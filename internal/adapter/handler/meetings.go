package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dealsense/dealsense/internal/adapter/dto/common"
	"github.com/dealsense/dealsense/internal/usecase/meetings"
)

// Meetings handles meeting HTTP requests
type Meetings struct {
	service *meetings.Service
	logger  *zap.Logger
}

// NewMeetings creates a new meetings handler
func NewMeetings(service *meetings.Service, logger *zap.Logger) *Meetings {
	return &Meetings{service: service, logger: logger}
}

// List returns meetings, paginated
// GET /v1/meetings
func (h *Meetings) List(c echo.Context) error {
	page, pageSize, offset := parsePagination(c)

	items, total, err := h.service.List(c.Request().Context(), offset, pageSize)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, common.ListResponse{
		Data: items,
		Pagination: &common.PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
		},
	})
}

// Get returns one meeting with its classification
// GET /v1/meetings/:id
func (h *Meetings) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	meeting, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, meeting)
}
