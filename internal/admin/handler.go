// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/feedback"
	"github.com/carterperez-dev/templates/feedback-backend/internal/health"
)

type FeedbackStats interface {
	Stats(ctx context.Context) (*feedback.Stats, error)
}

type Handler struct {
	feedback   FeedbackStats
	dbStats    func() sql.DBStats
	redisStats func() *redis.PoolStats
	checks     func(ctx context.Context) []health.HealthCheck
}

type HandlerConfig struct {
	Feedback   FeedbackStats
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	Checks     func(ctx context.Context) []health.HealthCheck
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		feedback:   cfg.Feedback,
		dbStats:    cfg.DBStats,
		redisStats: cfg.RedisStats,
		checks:     cfg.Checks,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/v1/admin/stats", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetDashboard)
		r.Get("/feedback", h.GetFeedbackStats)
		r.Get("/db", h.GetDatabaseStats)
		r.Get("/redis", h.GetRedisStats)
		r.Get("/runtime", h.GetRuntimeStats)
	})
}

// GetDashboard combines the moderation backlog with dependency health.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := DashboardResponse{
		Database: PoolStatus{DB: h.getDBStats()},
		Redis:    PoolStatus{Redis: h.getRedisStats()},
		Runtime:  readRuntimeStats(),
	}

	if h.feedback != nil {
		stats, err := h.feedback.Stats(ctx)
		if err != nil {
			core.InternalServerError(w, err)
			return
		}
		resp.Feedback = stats
	}

	if h.checks != nil {
		resp.Checks = h.checks(ctx)
	}

	core.OK(w, resp)
}

func (h *Handler) GetFeedbackStats(w http.ResponseWriter, r *http.Request) {
	if h.feedback == nil {
		core.NotFound(w, "feedback stats")
		return
	}

	stats, err := h.feedback.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) GetDatabaseStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getDBStats())
}

func (h *Handler) GetRedisStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, h.getRedisStats())
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, r *http.Request) {
	core.OK(w, readRuntimeStats())
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
		MaxIdleClosed:      stats.MaxIdleClosed,
		MaxLifetimeClosed:  stats.MaxLifetimeClosed,
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	if stats == nil {
		return nil
	}

	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
		StaleConns: stats.StaleConns,
	}
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}
