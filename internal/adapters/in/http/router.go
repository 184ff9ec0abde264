// Package http exposes the use cases over a JSON API served by echo. Requests
// are checked against the embedded OpenAPI document before they reach a
// handler, and the same document backs the swagger UI at /swagger/.
package http

import (
	"log/slog"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP application: access logging into logger, request
// validation against doc, error rendering and the routes of server.
func NewEcho(server *Server, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = RegisterSwaggerDoc(doc); err != nil {
		return nil, err
	}

	httpLogger := logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(httpLogger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			httpLogger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(validator)

	RegisterHandlers(e, server)
	return e, nil
}

// RegisterHandlers mounts every route of server on e.
func RegisterHandlers(e *echo.Echo, server *Server) {
	e.GET("/health", server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/recipients", server.CreateRecipient)
	e.POST("/orders", server.CreateOrder)
	e.GET("/orders/awaiting", server.FetchAwaitingOrders)
	e.GET("/orders/completed", server.FetchCompletedOrders)
	e.GET("/orders/tracking/:trackingCode", server.TrackOrder)
	e.GET("/orders/:orderId", server.GetOrderDetails)
	e.PATCH("/orders/:orderId/pickup", server.PickUpOrder)
	e.PATCH("/orders/:orderId/deliver", server.DeliverOrder)
}
