package daemon

import (
	"sync/atomic"
	"time"
)

// Stats tracks service statistics using atomic operations for thread-safety
type Stats struct {
	RequestsTotal atomic.Int64
	FaultsTotal   atomic.Int64
	InFlight      atomic.Int32
	StartTime     time.Time
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{
		StartTime: time.Now(),
	}
}

// StatsSnapshot represents a point-in-time snapshot of the stats
type StatsSnapshot struct {
	Status        string    `json:"status"`
	RequestsTotal int64     `json:"requests_total"`
	FaultsTotal   int64     `json:"faults_total"`
	InFlight      int32     `json:"in_flight"`
	StartTime     time.Time `json:"start_time"`
	Uptime        string    `json:"uptime"`
}

// Snapshot returns a snapshot of the current stats
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Status:        "ok",
		RequestsTotal: s.RequestsTotal.Load(),
		FaultsTotal:   s.FaultsTotal.Load(),
		InFlight:      s.InFlight.Load(),
		StartTime:     s.StartTime,
		Uptime:        time.Since(s.StartTime).Round(time.Second).String(),
	}
}
