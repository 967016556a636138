// Package http exposes a running simulation over a small JSON API:
// run status, robot snapshots, the mailroom, recorded deliveries, mail intake
// and robot recall. Routes and wire types come from internal/generated/servers;
// the OpenAPI document they are declared in is validated at startup and served
// under /swagger.
package http

import (
	"log/slog"
	"net/http"

	"automail/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving server.
// It fails when the embedded OpenAPI document does not validate.
func NewRouter(server servers.ServerInterface, logger *slog.Logger) (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err := servers.RegisterSwagger(doc); err != nil {
		return nil, err
	}

	log := logger.With("component", "http_router")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.ErrorContext(c.Request().Context(), "request failed",
					"method", v.Method, "uri", v.URI, "status", v.Status, "error", v.Error)
				return nil
			}
			log.DebugContext(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}
