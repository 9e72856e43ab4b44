package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ChicagoDave/townpaint/pkg/analytics"
	"github.com/ChicagoDave/townpaint/pkg/sim"
	"github.com/ChicagoDave/townpaint/pkg/view"
	"github.com/ChicagoDave/townpaint/pkg/zone"
)

// snapshotEvery is how many ticks pass between full state broadcasts.
const snapshotEvery = 8

// Server is the local development server. It owns a live simulation and is
// its only writer; every access goes through mu.
type Server struct {
	port int
	tick time.Duration
	log  *slog.Logger

	mu  sync.Mutex
	sim *sim.Sim

	hub *hub
}

// New creates a server around an existing simulation.
func New(s *sim.Sim, port int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	tick := s.Config().Sim.Tick
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	return &Server{
		port: port,
		tick: tick,
		log:  log,
		sim:  s,
		hub:  newHub(log),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/paint", s.handlePaint)
	mux.HandleFunc("POST /api/erase", s.handleErase)
	mux.HandleFunc("POST /api/tick", s.handleTick)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /", s.handleIndex)

	return mux
}

// Start runs the tick loop and serves HTTP until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go s.loop(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	s.log.Info("townpaint server starting", "addr", "http://localhost"+srv.Addr, "tick", s.tick)

	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}

func (s *Server) loop(ctx context.Context) {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Step(s.tick)
		}
	}
}

// Step advances the simulation by one tick and fans the result out to
// websocket clients.
func (s *Server) Step(dt time.Duration) *sim.TickResult {
	s.mu.Lock()
	res := s.sim.Tick(dt)
	var snap *view.Snapshot
	if s.hub.len() > 0 && (res.Rebuilt || res.Recomputed || res.Tick%snapshotEvery == 0) {
		snap = view.Assemble(s.sim)
	}
	s.mu.Unlock()

	if len(res.Events) > 0 || len(res.Transitions) > 0 || !res.Report.Valid {
		s.hub.broadcast("tick", res)
	}
	if snap != nil {
		s.hub.broadcast("state", snap)
	}
	return res
}

func (s *Server) snapshot() *view.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view.Assemble(s.sim)
}

// PaintRequest is the body of POST /api/paint and of websocket paint messages.
type PaintRequest struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// EraseRequest is the body of POST /api/erase and of websocket erase messages.
type EraseRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

func (s *Server) paint(req PaintRequest) (zone.PaintResult, error) {
	kind, ok := zone.ParseKind(req.Kind)
	if !ok {
		return zone.PaintResult{}, fmt.Errorf("unknown zone kind %q", req.Kind)
	}
	if req.Radius <= 0 {
		return zone.PaintResult{}, fmt.Errorf("radius must be > 0, got %v", req.Radius)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Paint(kind, req.X, req.Y, req.Radius), nil
}

func (s *Server) erase(req EraseRequest) (zone.EraseResult, error) {
	if req.Radius <= 0 {
		return zone.EraseResult{}, fmt.Errorf("radius must be > 0, got %v", req.Radius)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Erase(req.X, req.Y, req.Radius), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>townpaint</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>townpaint</h1>
<p>Connect a renderer to <code>/ws</code> or poll <code>/api/state</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	summary, report := analytics.Summarize(s.snapshot())
	writeJSON(w, http.StatusOK, map[string]any{
		"summary":    summary,
		"validation": report,
	})
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, view.ValidateSnapshot(s.snapshot()))
}

func (s *Server) handlePaint(w http.ResponseWriter, r *http.Request) {
	var req PaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding paint request: %w", err))
		return
	}
	res, err := s.paint(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.log.Info("paint", "kind", req.Kind, "x", req.X, "y", req.Y, "radius", req.Radius, "zone", res.Zone, "rejected", res.Rejected)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleErase(w http.ResponseWriter, r *http.Request) {
	var req EraseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding erase request: %w", err))
		return
	}
	res, err := s.erase(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.log.Info("erase", "x", req.X, "y", req.Y, "radius", req.Radius, "removed", len(res.Removed))
	writeJSON(w, http.StatusOK, res)
}

// handleTick advances the simulation by ?n= ticks (default 1), independent
// of the background loop.
func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	n := 1
	if q := r.URL.Query().Get("n"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 10000 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("n must be an integer in [1, 10000], got %q", q))
			return
		}
		n = v
	}
	var last *sim.TickResult
	for range n {
		last = s.Step(s.tick)
	}
	writeJSON(w, http.StatusOK, last)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
