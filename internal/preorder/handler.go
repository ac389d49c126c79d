package preorder

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"aurex-showroom/internal/telemetry"
)

const maxBodyBytes = 16 << 10

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Handler serves POST /api/preorders.
type Handler struct {
	Store   Store
	Metrics *telemetry.Metrics
	Logger  zerolog.Logger
}

func NewHandler(store Store, metrics *telemetry.Metrics, logger zerolog.Logger) *Handler {
	return &Handler{Store: store, Metrics: metrics, Logger: logger}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		h.Metrics.PreorderRejected(ctx, "validation")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	in, err := Validate(in)
	if err != nil {
		h.Metrics.PreorderRejected(ctx, "validation")
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Message, Field: ve.Field})
			return
		}
		h.Logger.Error().Err(err).Msg("preorder validation failed")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	p, err := h.Store.Create(ctx, in)
	if err != nil {
		h.Metrics.PreorderRejected(ctx, "storage")
		h.Logger.Error().Err(err).Str("variant", in.Variant).Msg("failed to store preorder")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
		return
	}

	h.Metrics.PreorderCreated(ctx, p.Variant)
	h.Logger.Info().Uint("id", p.ID).Str("variant", p.Variant).Msg("preorder created")
	writeJSON(w, http.StatusCreated, p)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
