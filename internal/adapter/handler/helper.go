package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/dealsense/dealsense/errors"
	"github.com/dealsense/dealsense/internal/adapter/dto/common"
)

// respondError maps an error onto the JSON error contract. AppErrors keep
// their status code and error code; anything else surfaces as a 500.
func respondError(c echo.Context, logger *zap.Logger, err error) error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.ErrInternal(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code.String(),
		Details: appErr.Details,
	})
}

// parsePagination reads page/page_size query params with sane bounds
func parsePagination(c echo.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return page, pageSize, (page - 1) * pageSize
}

// uintParam parses a numeric path parameter
func uintParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.ErrInvalidArgument(name + " must be a positive integer")
	}
	return uint(value), nil
}
