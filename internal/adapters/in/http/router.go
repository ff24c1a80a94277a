package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const (
	healthPath  = "/health"
	openAPIPath = "/openapi.yaml"

	// requestErrorKey holds an internal error whose details were hidden
	// from the client so the request logger can still report it.
	requestErrorKey = "request_error"
)

// NewRouter builds the echo instance serving the API, its description and
// the Swagger UI.
//
// Usage:
//
//	e, err := http.NewRouter(ctx, http.NewServer(handlers), logger)
//	e.Logger.Fatal(e.Start(":8080"))
func NewRouter(ctx context.Context, server ServerInterface, logger *zap.Logger) (*echo.Echo, error) {
	doc, err := LoadSwagger(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(requestLoggerConfig(logger)))
	e.Use(validator)

	e.GET(healthPath, func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET(openAPIPath, func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL(openAPIPath)))

	RegisterHandlers(e, server)
	return e, nil
}

func requestLoggerConfig(logger *zap.Logger) middleware.RequestLoggerConfig {
	return middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == healthPath
		},
		LogLatency:   true,
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("path", v.URIPath),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("client_ip", v.RemoteIP),
				zap.String("user_agent", v.UserAgent),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			if hidden, ok := c.Get(requestErrorKey).(error); ok {
				fields = append(fields, zap.NamedError("cause", hidden))
			}

			switch {
			case v.Status >= http.StatusInternalServerError:
				logger.Error("http_request", fields...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("http_request", fields...)
			default:
				logger.Info("http_request", fields...)
			}
			return nil
		},
	}
}
