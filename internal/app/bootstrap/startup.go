// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ArticleHub reports the collection sizes it starts with so a wrong
// mongo_database is obvious in the first lines of the log.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	fields := []zap.Field{
		zap.String("database", deps.MongoDatabase.Name()),
		zap.String("identity_header", appCfg.IdentityHeader),
		zap.Bool("metrics", appCfg.MetricsEnabled),
	}
	for _, name := range []string{"users", "articles"} {
		n, err := deps.MongoDatabase.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", name, err)
		}
		fields = append(fields, zap.Int64(name, n))
	}
	logger.Info("articlehub starting", fields...)
	return nil
}
