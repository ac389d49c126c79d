package server

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/internal/catalog"
	"aurex-showroom/internal/glbcache"
	"aurex-showroom/scene"
	"aurex-showroom/showroom"
	"aurex-showroom/vehicle"
)

func (s *Server) selection(r *http.Request) (vehicle.Model, core.Color, error) {
	q := r.URL.Query()
	model := s.opts.Model
	if name := q.Get("model"); name != "" {
		m, err := vehicle.Lookup(name)
		if err != nil {
			return nil, core.Color{}, err
		}
		model = m
	}
	color, err := catalog.ResolveColor(q.Get("variant"), q.Get("color"), s.opts.Color)
	if err != nil {
		return nil, core.Color{}, err
	}
	return model, color, nil
}

func floatParam(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return f, nil
}

// handleVehicle returns the composed scene posed at scroll progress and
// time t.
func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request) {
	model, color, err := s.selection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	}
	progress, err := floatParam(r, "progress")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	}
	t, err := floatParam(r, "t")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	}

	a := vehicle.New(model, color)
	a.Apply(model.Preset().Pose(animation.Clamp01(progress), t))
	writeJSON(w, http.StatusOK, scene.NewDocument(showroom.Compose(a)))
}

// handleVehicleGLB serves the vehicle at rest as binary glTF.
func (s *Server) handleVehicleGLB(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	model, color, err := s.selection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Message: err.Error()})
		return
	}

	key := glbcache.Key(model.Name(), color)
	data, ok, err := s.opts.Cache.Get(ctx, key)
	if err != nil {
		s.opts.Logger.Warn().Err(err).Str("key", key).Msg("glb cache read failed")
	}
	s.opts.Metrics.CacheLookup(ctx, ok)

	if !ok {
		var buf bytes.Buffer
		if err := scene.ExportGLB(&buf, vehicle.New(model, color).Root); err != nil {
			s.opts.Logger.Error().Err(err).Str("model", model.Name()).Msg("glb export failed")
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: "export failed"})
			return
		}
		data = buf.Bytes()
		if err := s.opts.Cache.Set(ctx, key, data); err != nil {
			s.opts.Logger.Warn().Err(err).Str("key", key).Msg("glb cache write failed")
		}
	}

	w.Header().Set("Content-Type", "model/gltf-binary")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if ok {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
