// Package server exposes a stopwatch registry over a small HTTP API, plus
// Prometheus metrics and a WebSocket snapshot stream. All state lives in the
// registry; handlers only translate requests into registry operations.
package server

import (
	"time"

	"github.com/MeKo-Tech/lapse/internal/report"
	"github.com/MeKo-Tech/lapse/stopwatch"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	registry         *stopwatch.Registry
	corsOrigin       string
	snapshotInterval time.Duration
}

// Config holds server configuration.
type Config struct {
	Host             string
	Port             int
	CORSOrigin       string
	SnapshotInterval time.Duration
}

// NewServer creates a server serving the given registry.
func NewServer(registry *stopwatch.Registry, cfg Config) *Server {
	interval := cfg.SnapshotInterval
	if interval <= 0 {
		interval = time.Second
	}
	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	return &Server{
		registry:         registry,
		corsOrigin:       corsOrigin,
		snapshotInterval: interval,
	}
}

// Response types for API endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

type CreateRequest struct {
	ID string `json:"id"`
}

type ListResponse struct {
	Stopwatches []report.Snapshot `json:"stopwatches"`
	Count       int               `json:"count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
