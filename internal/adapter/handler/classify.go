package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	classifydto "github.com/dealsense/dealsense/internal/adapter/dto/classify"
	"github.com/dealsense/dealsense/internal/adapter/dto/common"
	"github.com/dealsense/dealsense/internal/usecase/classify"
)

// Classify handles classification HTTP requests
type Classify struct {
	service *classify.Service
	logger  *zap.Logger
}

// NewClassify creates a new classify handler
func NewClassify(service *classify.Service, logger *zap.Logger) *Classify {
	return &Classify{service: service, logger: logger}
}

// One classifies a single meeting
// POST /v1/classify/:id
func (h *Classify) One(c echo.Context) error {
	meetingID, err := uintParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	outcome, err := h.service.Classify(c.Request().Context(), meetingID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	status := http.StatusOK
	if outcome.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, outcome)
}

// Batch classifies several meetings in order. Unknown ids are skipped; a
// fatal classifier error aborts the remainder.
// POST /v1/classify/batch
func (h *Classify) Batch(c echo.Context) error {
	var req classifydto.BatchRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidArgument("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidArgument("ids must be a non-empty list of positive integers"))
	}

	outcomes, err := h.service.ClassifyBatch(c.Request().Context(), req.IDs)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, outcomes)
}

// List returns stored classifications, paginated
// GET /v1/classify
func (h *Classify) List(c echo.Context) error {
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
