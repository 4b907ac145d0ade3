package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/lapse/internal/report"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for the JSON API is handled separately; snapshots are
		// read-only, so any origin may subscribe.
		return true
	},
}

// SnapshotMessage is pushed to every WebSocket subscriber.
type SnapshotMessage struct {
	Type        string            `json:"type"`
	Stopwatches []report.Snapshot `json:"stopwatches"`
	Count       int               `json:"count"`
}

// snapshotWebSocketHandler upgrades the connection and streams periodic
// registry snapshots until the client disconnects.
func (s *Server) snapshotWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// required to notice close frames.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.snapshotInterval)
	defer ticker.Stop()

	for {
		if err := s.writeSnapshot(conn); err != nil {
			slog.Debug("WebSocket write failed, closing", "error", err)
			return
		}
		select {
		case <-closed:
			slog.Info("WebSocket connection closed", "remote_addr", r.RemoteAddr)
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) writeSnapshot(conn *websocket.Conn) error {
	snapshots := report.CaptureAll(s.registry)
	return conn.WriteJSON(SnapshotMessage{
		Type:        "snapshot",
		Stopwatches: snapshots,
		Count:       len(snapshots),
	})
}
