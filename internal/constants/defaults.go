// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits. These constants
// provide sensible fallbacks for configuration settings and establish
// boundaries for resource usage.
package constants

import "time"

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultReadTimeout is the default maximum duration for reading a request.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout is the default maximum duration for writing a response.
	// Detection requests block on the diagnosis provider, so this must exceed
	// the provider latency.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultIdleTimeout is the default maximum duration for idle keep-alive connections.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout is the default grace period for in-flight requests on shutdown.
	DefaultShutdownTimeout = 15 * time.Second

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of idle database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"
)

// JWT Defaults define fallback token settings.
const (
	// DefaultJWTExpiry is the default token lifetime. Tokens are valid from
	// issuance until this duration elapses; there is no revocation.
	DefaultJWTExpiry = 24 * time.Hour

	// DefaultJWTIssuer is the default issuer claim for generated tokens.
	DefaultJWTIssuer = "crop-portal-api"

	// DevJWTSecret is the signing key used when none is configured in a
	// development environment. Startup fails in any other environment
	// without an explicit secret.
	DevJWTSecret = "dev-secret-change-in-production"
)

// Upload Limits define the boundaries for image uploads.
const (
	// MaxUploadSize is the maximum accepted upload payload in bytes (5 MiB).
	// Enforced at the transport boundary before any byte reaches storage.
	MaxUploadSize = 5 << 20

	// DefaultUploadDir is the default directory for stored uploads.
	DefaultUploadDir = "uploads"

	// UploadFieldName is the multipart form field carrying the image.
	UploadFieldName = "imageFile"
)

// Request Limits define the boundaries for JSON request bodies.
const (
	// MaxRequestBodySize is the maximum size in bytes for JSON request bodies.
	MaxRequestBodySize = 1 << 20
)

// History Defaults define the parameters for analysis history listing.
const (
	// DefaultHistoryLimit is the number of records returned when no limit is given.
	DefaultHistoryLimit = 50
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment.
	EnvProduction = "production"
)

// Default Password Hash Settings define the parameters for Argon2id hashing.
const (
	// DefaultPasswordHashMemory is the memory cost parameter in KiB.
	DefaultPasswordHashMemory = 64 * 1024

	// DefaultPasswordHashIterations is the time cost parameter.
	DefaultPasswordHashIterations = 3

	// DefaultPasswordHashParallelism is the number of threads used during hashing.
	DefaultPasswordHashParallelism = 2

	// DefaultPasswordHashSaltLength is the length in bytes of the random salt.
	DefaultPasswordHashSaltLength = 16

	// DefaultPasswordHashKeyLength is the length in bytes of the derived key.
	DefaultPasswordHashKeyLength = 32
)
