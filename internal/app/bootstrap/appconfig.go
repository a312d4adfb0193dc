// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for ArticleHub.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// the framework-level settings: ports, TLS, log level, CORS, body limits.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Upper bound on pooled connections
	MongoMinPoolSize uint64 // Connections kept warm

	// Request handling
	IdentityHeader   string // Header carrying the caller's user id (default: userid)
	DefaultPageLimit int    // Article list page size when ?limit is absent or invalid
	MaxPageLimit     int    // Largest accepted ?limit

	// Observability
	MetricsEnabled bool // Mount /metrics and record HTTP metrics
}
