// Package stream serves the live showroom over a WebSocket: the viewer
// reports scroll and finish changes, the server answers with scene
// documents and per-frame poses.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"aurex-showroom/animation"
	"aurex-showroom/core"
	"aurex-showroom/internal/catalog"
	"aurex-showroom/internal/telemetry"
	"aurex-showroom/showroom"
	"aurex-showroom/vehicle"
)

const (
	sendChSize   = 64
	writeWait    = 10 * time.Second
	maxReadBytes = 4096
)

// Handler upgrades GET /ws/showroom. Query parameters model, variant and
// color pick the starting vehicle.
type Handler struct {
	Model   vehicle.Model
	Color   core.Color
	FPS     int
	Metrics *telemetry.Metrics
	Logger  zerolog.Logger

	Upgrader ws.Upgrader
}

func NewHandler(model vehicle.Model, color core.Color, fps int, metrics *telemetry.Metrics, logger zerolog.Logger) *Handler {
	return &Handler{
		Model:   model,
		Color:   color,
		FPS:     fps,
		Metrics: metrics,
		Logger:  logger,
		Upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	model, color, err := h.resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		feed:   animation.NewScrollFeed(),
		sendCh: make(chan []byte, sendChSize),
	}
	s.logger = h.Logger.With().Str("session", s.id).Logger()
	s.stage = showroom.NewStage(model, color, s.feed)
	defer s.stage.Close()

	h.Metrics.StreamOpened(r.Context())
	defer h.Metrics.StreamClosed(context.WithoutCancel(r.Context()))

	s.logger.Info().Str("model", model.Name()).Str("color", color.Hex()).Msg("stream opened")
	s.run(r.Context(), h.FPS)
	s.logger.Info().Msg("stream closed")
}

func (h *Handler) resolve(r *http.Request) (vehicle.Model, core.Color, error) {
	q := r.URL.Query()
	model := h.Model
	if name := q.Get("model"); name != "" {
		m, err := vehicle.Lookup(name)
		if err != nil {
			return nil, core.Color{}, err
		}
		model = m
	}
	color, err := catalog.ResolveColor(q.Get("variant"), q.Get("color"), h.Color)
	if err != nil {
		return nil, core.Color{}, err
	}
	return model, color, nil
}

// session is one connected viewer. Only writeLoop writes to conn and closes it.
type session struct {
	id     string
	conn   *ws.Conn
	feed   *animation.ScrollFeed
	stage  *showroom.Stage
	sendCh chan []byte
	logger zerolog.Logger

	lastScene uint64
}

func (s *session) run(parent context.Context, fps int) {
	g, ctx := errgroup.WithContext(parent)
	ctx, cancel := context.WithCancel(ctx)

	g.Go(func() error { return s.writeLoop(ctx) })

	if err := s.sendScene(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to send initial scene")
		cancel()
		_ = g.Wait()
		return
	}

	g.Go(func() error {
		return showroom.NewLoop(s.stage, s.logger).Run(ctx, fps, func(f showroom.Frame) error {
			return s.sendFrame(ctx, f)
		})
	})

	s.readLoop(ctx)
	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Debug().Err(err).Msg("stream ended")
	}
}

// writeLoop drains sendCh until ctx ends, then closes the socket.
func (s *session) writeLoop(ctx context.Context) error {
	defer s.conn.Close()
	for {
		select {
		case <-ctx.Done():
			deadline := time.Now().Add(writeWait)
			_ = s.conn.WriteControl(ws.CloseMessage,
				ws.FormatCloseMessage(ws.CloseGoingAway, "showroom closed"), deadline)
			return ctx.Err()
		case data := <-s.sendCh:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return fmt.Errorf("set write deadline: %w", err)
			}
			if err := s.conn.WriteMessage(ws.TextMessage, data); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	}
}

func (s *session) enqueue(ctx context.Context, data []byte) error {
	select {
	case s.sendCh <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *session) sendScene(ctx context.Context) error {
	doc, version := s.stage.Snapshot()
	data, err := encode(TypeScene, ScenePayload{
		Session:  s.id,
		Version:  version,
		Model:    s.stage.Model().Name(),
		Color:    s.stage.Color().Hex(),
		Document: doc,
	})
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	s.lastScene = version
	return s.enqueue(ctx, data)
}

// sendFrame is only called from the frame loop, which also owns lastScene.
// A frame never precedes the scene of its version.
func (s *session) sendFrame(ctx context.Context, f showroom.Frame) error {
	if f.Version != s.lastScene {
		if err := s.sendScene(ctx); err != nil {
			return err
		}
		if f.Version < s.lastScene {
			return nil
		}
	}
	data, err := encode(TypeFrame, f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return s.enqueue(ctx, data)
}

func (s *session) sendError(ctx context.Context, msg string) {
	data, err := encode(TypeError, ErrorPayload{Message: msg})
	if err != nil {
		return
	}
	_ = s.enqueue(ctx, data)
}

// readLoop applies viewer input until the socket fails or ctx ends.
func (s *session) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxReadBytes)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !ws.IsCloseError(err, ws.CloseNormalClosure, ws.CloseGoingAway) {
				s.logger.Debug().Err(err).Msg("read failed")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(ctx, "invalid message")
			continue
		}

		switch msg.Type {
		case TypeScroll:
			s.feed.Set(animation.ScrollMetrics{
				ScrollY:        msg.ScrollY,
				ScrollHeight:   msg.ScrollHeight,
				ViewportHeight: msg.ViewportHeight,
			})
		case TypeColor:
			c, err := core.ParseHex(msg.Color)
			if err != nil {
				s.sendError(ctx, err.Error())
				continue
			}
			v := s.stage.SetColor(c)
			s.logger.Debug().Str("color", c.Hex()).Uint64("version", v).Msg("rebuilt")
		case TypeVariant:
			f, ok := catalog.Lookup(msg.Variant)
			if !ok {
				s.sendError(ctx, fmt.Sprintf("unknown variant %q", msg.Variant))
				continue
			}
			v := s.stage.SetColor(f.Color)
			s.logger.Debug().Str("variant", f.Name).Uint64("version", v).Msg("rebuilt")
		default:
			s.sendError(ctx, fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}
