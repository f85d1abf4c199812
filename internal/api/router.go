package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ownergate/gatekeeper/docs"
	"github.com/ownergate/gatekeeper/internal/api/handler"
	"github.com/ownergate/gatekeeper/internal/api/middleware"
	"github.com/ownergate/gatekeeper/internal/core/domain"
	"github.com/ownergate/gatekeeper/internal/core/ports"
	"github.com/ownergate/gatekeeper/internal/infrastructure/http/handlers"
)

// Deps carries everything NewRouter wires into routes. Exchanger may be nil.
type Deps struct {
	Log       zerolog.Logger
	Enricher  middleware.Enricher
	Lock      middleware.LockReader
	Setup     ports.SetupLock
	Bootstrap ports.BootstrapService
	Login     ports.LoginService
	State     ports.StateService
	Exchanger ports.IdentityExchanger
	Reset     ports.ResetAuthority
	Cookies   middleware.Cookies
	PublicURL string
	StateTTL  time.Duration
	Pingers   map[string]ports.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	reg := prometheus.NewRegistry()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "gatekeeper",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.Session(d.Enricher, d.Cookies, d.Log))

	guard := func(class domain.ResourceClass) echo.MiddlewareFunc {
		return middleware.Guard(class, d.Lock)
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(handler.AuthDeps{
		Bootstrap: d.Bootstrap,
		Login:     d.Login,
		State:     d.State,
		Exchanger: d.Exchanger,
		Cookies:   d.Cookies,
		PublicURL: d.PublicURL,
		StateTTL:  d.StateTTL,
	})
	setupHandler := handler.NewSetupHandler(d.Bootstrap)
	adminHandler := handler.NewAdminHandler(d.Setup, d.Reset)
	resetHandler := handler.NewResetHandler(d.Reset, d.Cookies)
	landingHandler := handler.NewLandingHandler(d.Setup)

	// --- Public ---
	e.GET(domain.PathLanding, landingHandler.Landing)
	e.GET("/login", authHandler.LoginPage)
	e.GET("/auth/login", authHandler.Start)
	e.GET("/auth/callback", authHandler.Callback)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/reset", resetHandler.Reset)

	// --- Setup (only while no owner exists) ---
	e.GET("/setup", setupHandler.Status, guard(domain.ResourceSetupOnly))
	e.PUT("/setup/oauth", setupHandler.SaveOAuth, guard(domain.ResourceSetupOnly))

	// --- Signed in ---
	e.GET("/profile", adminHandler.Profile, guard(domain.ResourceAuthenticatedOnly))

	// --- Admin ---
	e.GET("/admin", adminHandler.Overview, guard(domain.ResourceAdminOrOwner))
	e.GET("/admin/reset-route", adminHandler.ResetRoute, guard(domain.ResourceOwnerOnly))
	e.PUT("/admin/reset-route", adminHandler.SetResetRoute, guard(domain.ResourceOwnerOnly))

	// --- Operations (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Pingers)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
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
