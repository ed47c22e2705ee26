// Package api provides the HTTP API for RouteLog Pro.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/routelogpro/routelogpro/internal/api/handler"
	"github.com/routelogpro/routelogpro/internal/api/middleware"
	"github.com/routelogpro/routelogpro/internal/auth"
	"github.com/routelogpro/routelogpro/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	AuthService *auth.Service
	TripService *trip.Service
	DB          handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "routelogpro-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type
	r.Use(middleware.RequireJSON)          // JSON request bodies only

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	meHandler := handler.NewMeHandler(cfg.AuthService)
	tripHandler := handler.NewTripHandler(cfg.TripService)
	locationHandler := handler.NewLocationHandler()

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)         // 10 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit) // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			// logout-all requires authentication
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Curated location endpoints (public) - standard rate limiting
		r.Route("/locations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", locationHandler.SearchLocations)
			r.Get("/resolve", locationHandler.ResolveLocation)
		})

		// Me endpoints (authenticated) - user-based rate limiting
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", meHandler.GetMe)
		})

		// Trip endpoints (authenticated)
		r.Route("/trips", func(r chi.Router) {
			r.Use(authMiddleware)

			// Planning fans out to the routing service - strict rate limiting
			r.With(middleware.RateLimitByUser(middleware.ExpensiveRateLimit)).
				Post("/", tripHandler.CreateTrip)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
				r.Get("/", tripHandler.ListTrips)
				r.Route("/{tripID}", func(r chi.Router) {
					r.Get("/", tripHandler.GetTrip)
					r.Get("/duty-summary", tripHandler.GetDutySummary)
					r.Get("/mapview", tripHandler.GetMapView)
					r.Get("/warnings", tripHandler.GetWarnings)
				})
			})
		})
	})

	return r
}
