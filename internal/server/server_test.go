package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/qmuntal/gltf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurex-showroom/animation"
	"aurex-showroom/internal/catalog"
	"aurex-showroom/internal/config"
	"aurex-showroom/internal/database"
	"aurex-showroom/internal/glbcache"
	"aurex-showroom/internal/preorder"
	"aurex-showroom/internal/stream"
	"aurex-showroom/scene"
)

// syncBuffer is written by handler goroutines while tests read it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnv struct {
	srv   *httptest.Server
	cache *glbcache.Memory
	logs  *syncBuffer
}

func newTestEnv(t *testing.T, health func(context.Context) error) *testEnv {
	t.Helper()
	m := database.NewManager(config.DBConfig{
		Driver:     "sqlite",
		SqlitePath: filepath.Join(t.TempDir(), "server.db"),
	}, zerolog.Nop())
	require.NoError(t, m.Connect())
	t.Cleanup(func() { _ = m.Close() })
	require.NoError(t, m.Setup(&preorder.Preorder{}))

	logs := &syncBuffer{}
	cache := glbcache.NewMemory(0)
	s := New(Options{
		Store:  preorder.NewGormStore(m.DB),
		Cache:  cache,
		Color:  catalog.Default().Color,
		FPS:    100,
		Health: health,
		Logger: zerolog.New(logs),
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, cache: cache, logs: logs}
}

func TestPreorderRoute(t *testing.T) {
	env := newTestEnv(t, nil)

	body := `{"name":"Jane Doe","email":"jane@example.com","variant":"Nebula Blue"}`
	resp, err := http.Post(env.srv.URL+"/api/preorders", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var p preorder.Preorder
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Nebula Blue", p.Variant)

	resp2, err := http.Post(env.srv.URL+"/api/preorders", "application/json",
		strings.NewReader(`{"name":"","email":"jane@example.com","variant":"Nebula Blue"}`))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestPreorderRouteRejectsGet(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, err := http.Get(env.srv.URL + "/api/preorders")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestFinishesRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, err := http.Get(env.srv.URL + "/api/finishes")
	require.NoError(t, err)
	defer resp.Body.Close()

	var list []struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 4)
	assert.Equal(t, "Stealth Black", list[0].Name)
	assert.Equal(t, "#3b82f6", list[2].Color)
}

func TestVehicleRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, err := http.Get(env.srv.URL + "/api/vehicle?variant=Mars%20Red&progress=1&t=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := scene.DecodeDocument(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "#ef4444", doc.Materials["body"].Color)
	assert.Equal(t, "night", doc.Environment)

	require.Len(t, doc.Root.Children, 1)
	car := doc.Root.Children[0]
	assert.Equal(t, "AurexX1", car.Name)
	assert.InDelta(t, animation.RootRotationY(1), float64(car.Transform.Rotation[1]), 1e-6)
}

func TestVehicleRouteBadParams(t *testing.T) {
	env := newTestEnv(t, nil)
	for _, q := range []string{"?model=truck", "?variant=Gold", "?color=zz", "?progress=abc", "?t=x", "?t=NaN", "?t=Inf", "?t=-Inf", "?progress=NaN"} {
		resp, err := http.Get(env.srv.URL + "/api/vehicle" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestVehicleGLBRouteCaches(t *testing.T) {
	env := newTestEnv(t, nil)
	url := env.srv.URL + "/api/vehicle.glb?model=placeholder&color=%233b82f6"

	resp, err := http.Get(url)
	require.NoError(t, err)
	first, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))
	assert.Equal(t, "model/gltf-binary", resp.Header.Get("Content-Type"))
	assert.Equal(t, "glTF", string(first[:4]))
	assert.Equal(t, 1, env.cache.Len())

	resp, err = http.Get(url)
	require.NoError(t, err)
	second, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))
	assert.Equal(t, first, second)

	var doc gltf.Document
	require.NoError(t, gltf.NewDecoder(bytes.NewReader(second)).Decode(&doc))
	assert.NotEmpty(t, doc.Nodes)
}

func TestHealthRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	resp, err := http.Get(env.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := newTestEnv(t, func(context.Context) error { return errors.New("db down") })
	resp, err = http.Get(down.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	env := newTestEnv(t, nil)

	resp, err := http.Get(env.srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	id := resp.Header.Get(RequestIDHeader)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+"/healthz", nil)
	require.NoError(t, err)
	fixed := uuid.NewString()
	req.Header.Set(RequestIDHeader, fixed)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, fixed, resp.Header.Get(RequestIDHeader))

	// The access line is written after the response is flushed.
	assert.Eventually(t, func() bool {
		return strings.Contains(env.logs.String(), fixed)
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, env.logs.String(), `"path":"/healthz"`)
	assert.Contains(t, env.logs.String(), `"status":200`)
}

func TestShowroomSocketThroughMiddleware(t *testing.T) {
	env := newTestEnv(t, nil)
	url := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/ws/showroom"

	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var e stream.Envelope
	require.NoError(t, conn.ReadJSON(&e))
	assert.Equal(t, stream.TypeScene, e.Type)
}
