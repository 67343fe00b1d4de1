package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/middleware"
	"github.com/cropportal/backend/internal/utils"
)

// SetupRoutes configures the routes for the application. Protected routes
// sit behind the JWT middleware; everything else is public.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// CORS headers are applied to all routes, preflight included
	r.Use(corsMiddleware(s.Config.CORS.AllowedOrigins))

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgEndpointNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, constants.MsgEndpointNotFound)
	})

	// Service banner (unprotected)
	r.Get("/", s.Handlers.SystemHandler.Home)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.Handlers.SystemHandler.Health)

		// Authentication routes
		r.Route("/auth", func(r chi.Router) {
			// Public auth endpoints
			r.Group(func(r chi.Router) {
				r.Post("/register", s.Handlers.AuthHandler.Register)
				r.Post("/login", s.Handlers.AuthHandler.Login)
			})

			// Protected auth endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))
				r.Get("/verify", s.Handlers.AuthHandler.Verify)
			})
		})

		// Detection routes (all protected)
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(s.authProviders.JWTService))

			r.Post("/detect", s.Handlers.DetectionHandler.Detect)
			r.Get("/history", s.Handlers.DetectionHandler.History)
		})
	})

	s.router = r
}

// GetRouter returns the configured router. Primarily used by tests.
func (s *Server) GetRouter() chi.Router {
	return s.router
}

// corsMiddleware creates a CORS middleware for the specified allowed
// origins. Requests from other origins pass through without CORS headers;
// the browser enforces the rejection.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")

					if r.Method != http.MethodOptions {
						next.ServeHTTP(w, r)
						return
					}

					// Preflight
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
					w.Header().Set("Access-Control-Max-Age", "300")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
