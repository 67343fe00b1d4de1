package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/config"
)

// InitLogger initializes the application logger with the given configuration.
func InitLogger(cfg *config.AppConfig) {
	// Set global log level
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		// Default to info level if invalid
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure logger output format
	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	// Set global logger
	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
}

// LogAuth logs an authentication event with a consistent field set.
func LogAuth(event, email string, success bool, reason string) {
	evt := log.Info()
	if !success {
		evt = log.Warn()
	}
	evt.
		Str("event", event).
		Str("email", email).
		Bool("success", success)
	if reason != "" {
		evt.Str("reason", reason)
	}
	evt.Msg("Authentication event")
}

// LogDBQuery logs a database query execution for debugging.
func LogDBQuery(query string, duration time.Duration, err error) {
	evt := log.Debug()
	if err != nil {
		evt = log.Error().Err(err)
	}
	evt.
		Str("query", strings.Join(strings.Fields(query), " ")).
		Dur("duration", duration).
		Msg("Database query executed")
}
