// Package main is the entry point for the Crop Portal API server, which
// provides authenticated crop-disease detection: user registration and
// login, JWT-protected image uploads and per-user analysis history.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/config"
	"github.com/cropportal/backend/internal/server"
	"github.com/cropportal/backend/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is non-fatal; configuration may come from
	// the environment or a config file instead.
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Crop Portal API Server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Bootstrap logger until the configured one takes over
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting Crop Portal API Server")

	utils.InitValidator()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
