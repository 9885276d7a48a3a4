package http

import (
	"errors"
	"fmt"
	"net/http"

	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Kind    string                `json:"kind"`
	Details []errs.FieldViolation `json:"details,omitempty"`
}

// ErrorHandler maps errors onto status codes by kind. Internal errors are logged and
// returned without their message.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("requestId", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Code < http.StatusInternalServerError {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, ErrorResponse{Error: msg, Kind: kindForStatus(he.Code)}
	}

	kind := errs.KindOf(err)
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest, ErrorResponse{
			Error:   err.Error(),
			Kind:    kind.String(),
			Details: errs.FieldViolations(err),
		}
	case errs.KindForbidden:
		return http.StatusForbidden, ErrorResponse{Error: err.Error(), Kind: kind.String()}
	case errs.KindNotFound:
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: kind.String()}
	case errs.KindConflict:
		return http.StatusConflict, ErrorResponse{Error: err.Error(), Kind: kind.String()}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: kind.String()}
	}
}

func kindForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errs.KindForbidden.String()
	case status == http.StatusNotFound:
		return errs.KindNotFound.String()
	case status == http.StatusConflict:
		return errs.KindConflict.String()
	case status < http.StatusInternalServerError:
		return errs.KindValidation.String()
	default:
		return errs.KindInternal.String()
	}
}
