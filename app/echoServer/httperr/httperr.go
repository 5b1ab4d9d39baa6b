// Package httperr turns service errors into HTTP responses.
package httperr

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"bookrental/util/apperr"
)

// Status maps an error code to its HTTP status.
func Status(code apperr.ErrCode) int {
	switch code {
	case apperr.ErrValidation:
		return http.StatusBadRequest
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrIntegrity:
		return http.StatusConflict
	case apperr.ErrInvalidCreds:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Respond logs err and converts it into an *echo.HTTPError. Coded errors keep
// their message; anything else becomes a generic 500 with details only in the log.
func Respond(c echo.Context, log *slog.Logger, op string, err error) error {
	code := apperr.Code(err)
	status := Status(code)
	rid := c.Response().Header().Get(echo.HeaderXRequestID)

	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error(op+" failed",
				"err", err,
				"req_id", rid,
				"path", c.Path(),
				"method", c.Request().Method,
			)
		}
		return echo.NewHTTPError(status, op+" failed")
	}
	if log != nil {
		log.Warn(op+" rejected", "code", string(code), "err", err, "req_id", rid)
	}
	return echo.NewHTTPError(status, err.Error())
}

// Bind decodes the body into req and validates it.
func Bind(c echo.Context, v *validator.Validate, log *slog.Logger, req any) error {
	if err := c.Bind(req); err != nil {
		if log != nil {
			log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if v == nil {
		return nil
	}
	if err := v.Struct(req); err != nil {
		if log != nil {
			log.Warn("validation failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "validation error: "+err.Error())
	}
	return nil
}

// ParamID reads a positive integer path parameter.
func ParamID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
