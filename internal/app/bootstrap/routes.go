// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	articlesfeature "github.com/dalemusser/articlehub/internal/app/features/articles"
	errorsfeature "github.com/dalemusser/articlehub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/articlehub/internal/app/features/health"
	usersfeature "github.com/dalemusser/articlehub/internal/app/features/users"
	articlestore "github.com/dalemusser/articlehub/internal/app/store/articles"
	userstore "github.com/dalemusser/articlehub/internal/app/store/users"
	"github.com/dalemusser/articlehub/internal/app/system/limits"
	"github.com/dalemusser/articlehub/internal/app/system/metrics"
	"github.com/dalemusser/articlehub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The stores are built once here and
// shared by every feature handler.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)
	articles := articlestore.New(deps.MongoDatabase)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(reqlog.Middleware(logger))
	var rec *metrics.Recorder
	if appCfg.MetricsEnabled {
		rec = metrics.New("articlehub")
		r.Use(rec.Middleware)
	}
	r.Use(middleware.RequestSize(limits.MaxJSONBodySize))
	// Bodies are JSON regardless of the client's Content-Type header.
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(errLog.NotFound)
	r.MethodNotAllowed(errLog.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	usersHandler := usersfeature.NewHandler(users, articles, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	articlesHandler := articlesfeature.NewHandler(users, articles, articlesfeature.Options{
		IdentityHeader:   appCfg.IdentityHeader,
		DefaultPageLimit: appCfg.DefaultPageLimit,
		MaxPageLimit:     appCfg.MaxPageLimit,
	}, errLog, logger)
	r.Mount("/articles", articlesfeature.Routes(articlesHandler))

	if rec != nil {
		r.Method(http.MethodGet, "/metrics", rec.Handler())
	}

	return r, nil
}
