package http

import (
	"log/slog"
	"net/http"

	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response. Clients branch on Kind.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindInvalidState, errs.KindInvalidTransition, errs.KindValidation, errs.KindUpstreamDeclined:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindUpstreamUnavailable:
		return http.StatusBadGateway
	case errs.KindInternal:
	}
	return http.StatusInternalServerError
}

// errorHandler renders use case errors by kind and lets echo errors keep
// their own status. Internal details never reach the client.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body Error
		if he, ok := err.(*echo.HTTPError); ok {
			body = Error{Code: he.Code, Kind: kindOfStatus(he.Code), Message: http.StatusText(he.Code)}
			if msg, isString := he.Message.(string); isString {
				body.Message = msg
			}
		} else {
			kind := errs.KindOf(err)
			body = Error{Code: statusOf(kind), Kind: kind.String(), Message: err.Error()}
			if kind == errs.KindInternal {
				logger.ErrorContext(c.Request().Context(), "request failed",
					"method", c.Request().Method, "path", c.Path(), "error", err)
				body.Message = http.StatusText(http.StatusInternalServerError)
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(body.Code)
			return
		}
		_ = c.JSON(body.Code, body)
	}
}

func kindOfStatus(code int) string {
	switch code {
	case http.StatusNotFound:
		return errs.KindNotFound.String()
	case http.StatusForbidden:
		return errs.KindForbidden.String()
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusBadRequest:
		return errs.KindValidation.String()
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	}
	return errs.KindInternal.String()
}
