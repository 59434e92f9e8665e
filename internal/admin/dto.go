// AngelaMos | 2026
// dto.go

package admin

import (
	"github.com/carterperez-dev/templates/feedback-backend/internal/feedback"
	"github.com/carterperez-dev/templates/feedback-backend/internal/health"
)

type DashboardResponse struct {
	Feedback *feedback.Stats      `json:"feedback,omitempty"`
	Checks   []health.HealthCheck `json:"checks,omitempty"`
	Database PoolStatus           `json:"database"`
	Redis    PoolStatus           `json:"redis"`
	Runtime  RuntimeStats         `json:"runtime"`
}

type PoolStatus struct {
	DB    *DBPoolStats    `json:"db,omitempty"`
	Redis *RedisPoolStats `json:"redis,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
	MaxIdleClosed      int64  `json:"max_idle_closed"`
	MaxLifetimeClosed  int64  `json:"max_lifetime_closed"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
	StaleConns uint32 `json:"stale_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
