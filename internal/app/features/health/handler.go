package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/articlehub/internal/app/system/reqlog"
	"github.com/dalemusser/articlehub/internal/app/system/timeouts"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB      Pinger
	Started time.Time
	Log     *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client and logger.
func NewHandler(db Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Started: time.Now(),
		Log:     logger,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "uptime":"1h2m3s" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		Uptime:   time.Since(h.Started).Truncate(time.Second).String(),
	}

	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		reqlog.Logger(r.Context(), h.Log).Error("health-check: mongo ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, resp)
}
