package http

import (
	"log/slog"
	"time"

	"laundry/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// EchoConfig carries what the HTTP layer needs besides the handlers.
type EchoConfig struct {
	Doc           *openapi3.T
	Directory     ports.UserDirectory
	LookupTimeout time.Duration
	Logger        *slog.Logger
}

// NewEcho assembles the HTTP surface: health, API docs and the
// authenticated /api/v1 routes validated against Doc.
func NewEcho(si ServerInterface, cfg EchoConfig) (*echo.Echo, error) {
	validator, err := requestValidator(cfg.Doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwaggerDoc(cfg.Doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler(cfg.Logger)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(cfg.Logger))
	e.Use(middleware.Recover())

	e.GET("/health", si.GetHealth)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", actorMiddleware(cfg.Directory, cfg.LookupTimeout), validator)
	RegisterHandlers(api, si)

	return e, nil
}
