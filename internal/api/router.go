package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/IvsKevinSchool/NotEcotrash-sub000/docs"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/api/handler"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/api/middleware"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/domain"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/ports"
	"github.com/IvsKevinSchool/NotEcotrash-sub000/internal/core/service"
)

// Backend is everything the gateway needs from the EcoTrash API client.
type Backend interface {
	ports.ReferenceAPI
	ports.ServiceAPI
	ports.ResourceAPI
	handler.Pinger
}

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Sessions ports.SessionReader
	Auth     ports.AuthService
	Backend  Backend
	// Storage is pinged by the readiness probe.
	Storage handler.Pinger
	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	reg := d.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.PropagateRequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "dashboard",
		Registerer: reg,
	}))
	e.Use(requestLogger(d.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	formHandler := handler.NewFormHandler(service.NewReferenceLoader(d.Backend, d.Log), d.Backend)
	resourceHandler := handler.NewResourceHandler(d.Backend, d.Backend)
	dashboardHandler := handler.NewDashboardHandler()

	guard := middleware.Guard(d.Sessions, middleware.GuardOptions{
		LoginPath:          handler.PathLogin,
		ChangePasswordPath: handler.PathChangePassword,
		PasswordGateExempt: []string{handler.PathChangePassword, handler.PathLogout},
	})
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleManagement)

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(map[string]handler.Pinger{
		"session_storage": d.Storage,
		"ecotrash_api":    d.Backend,
	}, d.Sessions.Loading)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	e.GET(handler.PathLogin, authHandler.LoginPage)
	e.POST(handler.PathLogin, authHandler.Login)
	e.POST(handler.PathLogout, authHandler.Logout)
	e.GET("/session", authHandler.Session)

	// --- Protected routes ---
	g := e.Group("", guard)
	g.POST(handler.PathChangePassword, authHandler.ChangePassword)
	g.GET("/", dashboardHandler.Root)
	for _, r := range domain.Roles {
		g.GET(r.Home(), dashboardHandler.Home, middleware.RBAC(r))
	}

	forms := g.Group("/forms")
	forms.GET("/:variant", formHandler.Get)
	forms.POST("/:variant/resolve", formHandler.Resolve)
	forms.POST("/:variant/submit", formHandler.Submit)

	resources := g.Group("/api")
	resources.GET("/:resource", resourceHandler.List)
	resources.GET("/:resource/:id", resourceHandler.Get)
	resources.POST("/:resource/:id/approve", resourceHandler.Approve, staff)
	resources.POST("/recurring-services/:id/:action", resourceHandler.RecurringAction, staff)

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
