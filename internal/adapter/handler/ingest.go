package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/usecase/ingest"
)

// Ingest handles CSV upload requests
type Ingest struct {
	service *ingest.Service
	logger  *zap.Logger
}

// NewIngest creates a new ingest handler
func NewIngest(service *ingest.Service, logger *zap.Logger) *Ingest {
	return &Ingest{service: service, logger: logger}
}

// UploadCSV ingests a multipart CSV upload
// POST /v1/ingest/csv
func (h *Ingest) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidArgument("multipart field 'file' is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, h.logger, apperrors.ErrInternal(err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return respondError(c, h.logger, apperrors.ErrInternal(err))
	}

	counters, err := h.service.Ingest(c.Request().Context(), data, fileHeader.Filename)
	if err != nil {
		// rows committed before the failure stay persisted; report both
		h.logger.Warn("ingestion aborted mid-file",
			zap.String("run_id", counters.RunID),
			zap.Int("processed", counters.Processed),
			zap.Error(err),
		)
		return respondError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, counters)
}
