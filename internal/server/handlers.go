package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/lapse/internal/report"
	"github.com/MeKo-Tech/lapse/stopwatch"
)

// SetupRoutes registers all API routes on the given mux. Method checks live
// in the handlers so that CORS preflight requests reach the middleware.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.withMetrics("/healthz", s.healthHandler))
	mux.HandleFunc("/stopwatches", s.withMetrics("/stopwatches", s.stopwatchesHandler))
	mux.HandleFunc("/stopwatches/{id}", s.withMetrics("/stopwatches/{id}", s.getHandler))
	mux.HandleFunc("/stopwatches/{id}/{op}", s.withMetrics("/stopwatches/{id}/{op}", s.opHandler))
	mux.HandleFunc("/ws", s.snapshotWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// stopwatchesHandler dispatches the collection endpoint: GET lists, POST creates.
func (s *Server) stopwatchesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listHandler(w, r)
	case http.MethodPost:
		s.createHandler(w, r)
	default:
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// listHandler returns a snapshot of every registered stopwatch.
func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	snapshots := report.CaptureAll(s.registry)
	s.writeJSON(w, http.StatusOK, ListResponse{
		Stopwatches: snapshots,
		Count:       len(snapshots),
	})
}

// createHandler registers a new stopwatch.
func (s *Server) createHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	sw, err := s.registry.Create(req.ID)
	if err != nil {
		stopwatchOpsTotal.WithLabelValues("create", "error").Inc()
		s.writeError(w, err.Error(), statusForError(err))
		return
	}

	stopwatchOpsTotal.WithLabelValues("create", "ok").Inc()
	registeredStopwatches.Set(float64(s.registry.Len()))
	slog.Info("Stopwatch created", "id", sw.ID())
	s.writeJSON(w, http.StatusCreated, report.Capture(sw))
}

// getHandler returns a snapshot of one stopwatch.
func (s *Server) getHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sw, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, "stopwatch not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Capture(sw))
}

// opHandler applies a state transition to one stopwatch.
func (s *Server) opHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sw, ok := s.registry.Get(r.PathValue("id"))
	if !ok {
		s.writeError(w, "stopwatch not found", http.StatusNotFound)
		return
	}

	op := r.PathValue("op")
	var err error
	switch op {
	case "start":
		err = sw.Start()
	case "lap":
		err = sw.Lap()
	case "stop":
		err = sw.Stop()
	case "reset":
		sw.Reset()
	default:
		s.writeError(w, "unknown operation: "+op, http.StatusNotFound)
		return
	}

	if err != nil {
		stopwatchOpsTotal.WithLabelValues(op, "error").Inc()
		s.writeError(w, err.Error(), statusForError(err))
		return
	}

	stopwatchOpsTotal.WithLabelValues(op, "ok").Inc()
	if op == "lap" || op == "stop" {
		if laps := sw.LapTimes(); len(laps) > 0 {
			lapDuration.Observe(laps[len(laps)-1].Seconds())
		}
	}
	s.writeJSON(w, http.StatusOK, report.Capture(sw))
}

// statusForError maps core library errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, stopwatch.ErrEmptyID):
		return http.StatusBadRequest
	case errors.Is(err, stopwatch.ErrDuplicateID):
		return http.StatusConflict
	case errors.Is(err, stopwatch.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
