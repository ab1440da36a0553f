package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tracking/internal/generated/servers"
	"tracking/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const StreamPath = "/api/v1/orders/active/stream"

// RouterConfig lists what the HTTP surface serves.
type RouterConfig struct {
	Server   *Server
	Stream   http.Handler
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	Now      func() time.Time
}

type healthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// NewRouter builds the echo instance: the API routes validated against the
// OpenAPI document, the tracking stream, health, metrics and Swagger UI.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Server == nil {
		return nil, errs.NewValueIsRequiredError("server")
	}
	if cfg.Stream == nil {
		return nil, errs.NewValueIsRequiredError("stream")
	}
	if cfg.Gatherer == nil {
		return nil, errs.NewValueIsRequiredError("gatherer")
	}
	if cfg.Logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := NewRequestValidator(doc)
	if err != nil {
		return nil, err
	}
	registerSwaggerDoc(doc)

	logger := cfg.Logger.With("component", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				logger.ErrorContext(c.Request().Context(), "Request failed", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.DebugContext(c.Request().Context(), "Request served", attrs...)
			return nil
		},
	}))
	e.Use(validator.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, healthResponse{Status: "ok", Time: cfg.Now()})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET(StreamPath, echo.WrapHandler(cfg.Stream))

	servers.RegisterHandlers(e, cfg.Server)

	return e, nil
}

// openAPIDoc serves the OpenAPI document to the Swagger UI.
type openAPIDoc struct {
	json string
}

func (d openAPIDoc) ReadDoc() string {
	return d.json
}

var swaggerOnce sync.Once

// registerSwaggerDoc registers the document once per process; swag panics on
// a second registration.
func registerSwaggerDoc(doc *openapi3.T) {
	swaggerOnce.Do(func() {
		data, err := doc.MarshalJSON()
		if err != nil {
			return
		}
		swag.Register(swag.Name, openAPIDoc{json: string(data)})
	})
}
