package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

// actorMiddleware builds the request's actor from the identity headers.
// The role always comes from the directory; a claimed role that differs
// is refused rather than silently replaced.
func actorMiddleware(directory ports.UserDirectory, lookupTimeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawID := c.Request().Header.Get(HeaderUserID)
			if rawID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" header is required")
			}
			id, err := kernel.UUIDFromString(rawID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, HeaderUserID+" is not a valid id")
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), lookupTimeout)
			defer cancel()

			role, err := directory.ResolveUser(ctx, id)
			if err != nil {
				if errors.Is(err, errs.ErrObjectNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
				}
				if errors.Is(err, context.DeadlineExceeded) {
					return errs.NewUpstreamUnavailableError("user directory", err)
				}
				return err
			}

			if claimed := c.Request().Header.Get(HeaderUserRole); claimed != "" && claimed != role.String() {
				return echo.NewHTTPError(http.StatusForbidden, "role does not match the user directory")
			}

			actor, err := identity.NewActor(id, role)
			if err != nil {
				return err
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) identity.Actor {
	actor, _ := c.Get(actorKey).(identity.Actor)
	return actor
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if actor := actorFrom(c); actor.Validate() == nil {
				attrs = append(attrs, "actor_id", actor.ID().String(), "role", actor.Role().String())
			}

			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
				attrs = append(attrs, "error", v.Error.Error())
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
