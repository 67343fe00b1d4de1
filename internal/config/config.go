// Package config loads and validates the application configuration.
//
// Configuration is assembled once at startup from an optional YAML file,
// overridden by environment variables, backfilled with defaults and then
// validated. The resulting AppConfig is immutable and passed to each
// component by reference; nothing mutates it after Load returns.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/cropportal/backend/internal/constants"
)

// AppConfig represents the entire application configuration.
type AppConfig struct {
	App          AppSettings      `yaml:"app"`
	Database     DatabaseSettings `yaml:"database"`
	Server       ServerSettings   `yaml:"server"`
	JWT          JWTSettings      `yaml:"jwt"`
	Upload       UploadSettings   `yaml:"upload"`
	Diagnosis    DiagnosisSettings `yaml:"diagnosis"`
	Logging      LoggingSettings  `yaml:"logging"`
	CORS         CORSSettings     `yaml:"cors"`
	PasswordHash HashSettings     `yaml:"password_hash"`
}

// AppSettings contains general application settings.
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains database connection settings.
type DatabaseSettings struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings.
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains JWT authentication settings.
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// UploadSettings contains image upload settings.
type UploadSettings struct {
	Dir string `yaml:"dir" env:"UPLOAD_DIR"`
}

// DiagnosisSettings contains diagnosis provider settings.
type DiagnosisSettings struct {
	// Latency is an artificial delay applied per diagnosis to emulate
	// model inference time.
	Latency time.Duration `yaml:"latency" env:"DIAGNOSIS_LATENCY"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSSettings contains CORS configuration.
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings.
type HashSettings struct {
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
}

// ConnectionString returns the database connection string.
func (dbs *DatabaseSettings) ConnectionString() string {
	// MariaDB/MySQL connection string format: username:password@tcp(host:port)/dbname
	password := dbs.Password
	if password != "" {
		password = ":" + password
	}

	return fmt.Sprintf(
		"%s%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		dbs.User, password, dbs.Host, dbs.Port, dbs.Name,
	)
}

// ServerAddress returns the complete server address.
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode.
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode.
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode.
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

// Load loads the configuration from a config file and environment variables.
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration.
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "crop-portal"
	}
	if config.App.Version == "" {
		config.App.Version = "2.0.0"
	}

	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// JWT defaults. The signing key has no production default; see validateConfig.
	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}
	if config.JWT.Secret == "" && config.App.IsDevelopment() {
		config.JWT.Secret = constants.DevJWTSecret
		log.Warn().Msg("JWT_SECRET not set, using development default")
	}

	if config.Upload.Dir == "" {
		config.Upload.Dir = constants.DefaultUploadDir
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	if config.PasswordHash.Memory == 0 {
		config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
	}
	if config.PasswordHash.Iterations == 0 {
		config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}
}

// validateConfig checks that the configuration is usable. A missing signing
// key outside development is a fatal startup condition, not a per-call error.
func validateConfig(config *AppConfig) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT expiry must be positive")
	}
	return nil
}

// logConfig logs the loaded configuration, hiding sensitive values.
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("server_address", config.Server.ServerAddress()).
		Str("database_host", config.Database.Host).
		Str("database_name", config.Database.Name).
		Str("upload_dir", config.Upload.Dir).
		Dur("jwt_expiry", config.JWT.Expiry).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
