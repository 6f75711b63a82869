package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cornelius/blog/docs"
	"github.com/cornelius/blog/internal/api/handler"
	"github.com/cornelius/blog/internal/api/metrics"
	"github.com/cornelius/blog/internal/api/middleware"
	"github.com/cornelius/blog/internal/core/ports"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Posts    ports.PostService
	Sessions ports.SessionService
	Cookies  *middleware.CookieCodec
	Renderer echo.Renderer
	Logger   zerolog.Logger

	// StaticDir is served under /public. Empty disables static files.
	StaticDir string
	// HealthChecks are run by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.DependencyCheck

	// Registerer receives the HTTP and blog_* metrics; Gatherer backs
	// GET /metrics. Nil disables the respective part.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Renderer = deps.Renderer
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/swagger")
		},
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            15552000,
		ContentSecurityPolicy: "default-src 'self'; form-action 'self'; frame-ancestors 'self'",
		ReferrerPolicy:        "no-referrer",
	}))
	if deps.Registerer != nil {
		metrics.MustRegister(deps.Registerer)
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "blog",
			Registerer: deps.Registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
	}
	e.Use(middleware.LoadSession(deps.Sessions, deps.Cookies, deps.Logger))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.Cookies, deps.Logger)
	postHandler := handler.NewPostHandler(deps.Auth, deps.Posts, deps.Sessions, deps.Cookies, deps.Logger)

	// --- Auth routes ---
	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Post routes (session required) ---
	requireSession := middleware.RequireSession()
	e.GET("/home", postHandler.Home, requireSession)
	e.GET("/newpost", postHandler.ShowNewPost, requireSession)
	e.POST("/newpost", postHandler.CreatePost, requireSession)
	e.POST("/deletepost/:id", postHandler.DeletePost, requireSession)

	if deps.StaticDir != "" {
		e.Static("/public", deps.StaticDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
