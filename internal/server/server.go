// Package server wires the showroom HTTP routes.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"aurex-showroom/core"
	"aurex-showroom/internal/catalog"
	"aurex-showroom/internal/glbcache"
	"aurex-showroom/internal/preorder"
	"aurex-showroom/internal/stream"
	"aurex-showroom/internal/telemetry"
	"aurex-showroom/vehicle"
)

// Options holds the server dependencies. Cache defaults to an unbounded
// in-memory cache and FPS to 30.
type Options struct {
	Store   preorder.Store
	Cache   glbcache.Cache
	Metrics *telemetry.Metrics
	Model   vehicle.Model
	Color   core.Color
	FPS     int
	// Health reports backing service status for /healthz. Nil means healthy.
	Health func(ctx context.Context) error
	Logger zerolog.Logger
}

type Server struct {
	opts Options
	mux  *http.ServeMux
}

func New(opts Options) *Server {
	if opts.Cache == nil {
		opts.Cache = glbcache.NewMemory(0)
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Model == nil {
		opts.Model = vehicle.Aurex{}
	}

	s := &Server{opts: opts, mux: http.NewServeMux()}
	s.mux.Handle("POST "+preorder.Path, preorder.NewHandler(opts.Store, opts.Metrics, opts.Logger))
	s.mux.HandleFunc("GET /api/finishes", s.handleFinishes)
	s.mux.HandleFunc("GET /api/vehicle", s.handleVehicle)
	s.mux.HandleFunc("GET /api/vehicle.glb", s.handleVehicleGLB)
	s.mux.Handle("GET /ws/showroom", stream.NewHandler(opts.Model, opts.Color, opts.FPS, opts.Metrics, opts.Logger))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the routes wrapped in request-id and access logging.
func (s *Server) Handler() http.Handler {
	return requestID(accessLog(s.opts.Logger, s.mux))
}

func (s *Server) handleFinishes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Finishes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.opts.Health != nil {
		if err := s.opts.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorBody struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
