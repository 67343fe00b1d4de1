// Package server provides the HTTP server for the Crop Portal API. It
// handles component wiring, routing and server lifecycle management.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/config"
	"github.com/cropportal/backend/internal/constants"
	"github.com/cropportal/backend/internal/database"
	"github.com/cropportal/backend/internal/diagnosis"
	"github.com/cropportal/backend/internal/handlers"
	"github.com/cropportal/backend/internal/repository"
	"github.com/cropportal/backend/internal/service"
	"github.com/cropportal/backend/internal/storage"
	"github.com/cropportal/backend/internal/upload"
	"github.com/cropportal/backend/migrations"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages registration, login and token verification
	AuthHandler *handlers.AuthHandler

	// DetectionHandler manages disease detection and analysis history
	DetectionHandler *handlers.DetectionHandler

	// SystemHandler serves the banner and health check
	SystemHandler *handlers.SystemHandler
}

// AuthProviders contains the authentication services for the application.
type AuthProviders struct {
	// JWTService handles token generation and validation
	JWTService *auth.JWTService

	// PasswordHasher handles credential hashing and verification
	PasswordHasher auth.PasswordHasher
}

// Server represents the API server for the Crop Portal application.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// authProviders contains authentication services
	authProviders *AuthProviders

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// repositories holds all repositories used by the server.
var repositories struct {
	userRepo     repository.UserRepository
	analysisRepo repository.AnalysisRepository
}

// services holds all services used by the server.
var services struct {
	authService      *service.AuthService
	detectionService *service.DetectionService
}

// NewServer creates a new server instance with all required components,
// wired in dependency order: database, auth providers, repositories,
// services, handlers, routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupAuthProviders(); err != nil {
		return nil, fmt.Errorf("failed to set up auth providers: %w", err)
	}

	if err := s.setupRepositories(); err != nil {
		return nil, fmt.Errorf("failed to set up repositories: %w", err)
	}

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase initializes the database connection and runs migrations.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	// Run migrations to create tables if they don't exist
	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// setupAuthProviders initializes the JWT service and password hasher.
func (s *Server) setupAuthProviders() error {
	jwtService := auth.NewJWTService(&s.Config.JWT)
	passwordHasher := auth.NewArgon2Hasher(auth.ConfigFromAppConfig(s.Config))

	s.authProviders = &AuthProviders{
		JWTService:     jwtService,
		PasswordHasher: passwordHasher,
	}

	return nil
}

// setupRepositories initializes all data repositories.
func (s *Server) setupRepositories() error {
	repositories.userRepo = repository.NewUserRepository(s.Db)
	repositories.analysisRepo = repository.NewAnalysisRepository(s.Db)

	return nil
}

// setupServices initializes all business services.
func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}
	if s.authProviders.PasswordHasher == nil {
		return fmt.Errorf("password hasher not initialized")
	}

	services.authService = service.NewAuthService(
		repositories.userRepo,
		s.authProviders.JWTService,
		s.authProviders.PasswordHasher,
	)

	fileStore, err := storage.NewDiskStore(s.Config.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to set up file store: %w", err)
	}

	provider := diagnosis.NewFixedTableProvider(s.Config.Diagnosis.Latency)
	validator := upload.NewValidator(constants.MaxUploadSize)

	services.detectionService = service.NewDetectionService(
		repositories.analysisRepo,
		fileStore,
		provider,
		validator,
	)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() error {
	s.Handlers = &Handlers{
		AuthHandler:      handlers.NewAuthHandler(services.authService),
		DetectionHandler: handlers.NewDetectionHandler(services.detectionService),
		SystemHandler:    handlers.NewSystemHandler(s.Db, s.Config),
	}

	if s.Handlers.AuthHandler == nil {
		return fmt.Errorf("failed to initialize AuthHandler")
	}

	return nil
}

// Start starts the HTTP server and blocks until a server error occurs or a
// shutdown signal is received, then shuts down gracefully.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, letting in-flight requests
// complete before closing the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	s.Db.Close()

	log.Info().Msg("Server stopped")
	return nil
}
