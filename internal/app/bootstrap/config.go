// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"

	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for ArticleHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, identity_header, etc.
//   - Environment variables: ARTICLEHUB_MONGO_URI, ARTICLEHUB_IDENTITY_HEADER, etc.
//   - Command-line flags: --mongo_uri, --identity_header, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "articlehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "identity_header", Default: "userid", Desc: "Request header carrying the caller's user id"},
	{Name: "default_page_limit", Default: 10, Desc: "Default page size for GET /articles"},
	{Name: "max_page_limit", Default: 100, Desc: "Maximum page size for GET /articles"},

	{Name: "metrics_enabled", Default: true, Desc: "Expose Prometheus metrics at /metrics"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, ARTICLEHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ARTICLEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		IdentityHeader:   appValues.String("identity_header"),
		DefaultPageLimit: appValues.Int("default_page_limit"),
		MaxPageLimit:     appValues.Int("max_page_limit"),

		MetricsEnabled: appValues.Bool("metrics_enabled"),
	}

	// Operation deadlines come from TIMEOUT_* and must be in place before
	// ConnectDB pings the server.
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("operation timeouts overridden from environment",
			zap.Int("applied", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long))
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI format is checked before any connection is attempted,
// and the paging limits must be positive with the default not above the cap.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}
	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}
	if appCfg.DefaultPageLimit < 1 || appCfg.MaxPageLimit < 1 {
		return fmt.Errorf("page limits must be positive (default_page_limit=%d, max_page_limit=%d)",
			appCfg.DefaultPageLimit, appCfg.MaxPageLimit)
	}
	if appCfg.DefaultPageLimit > appCfg.MaxPageLimit {
		return fmt.Errorf("default_page_limit (%d) exceeds max_page_limit (%d)",
			appCfg.DefaultPageLimit, appCfg.MaxPageLimit)
	}
	return nil
}
