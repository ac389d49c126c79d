package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValuesWithoutFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, ":8080", viper.GetString("http.addr"))
	assert.Equal(t, "postgres", viper.GetString("db.driver"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "aurex", viper.GetString("db.database"))
	assert.Equal(t, "./aurex.db", viper.GetString("db.sqlitePath"))
	assert.Equal(t, "aurex", viper.GetString("showroom.model"))
	assert.Equal(t, 30, viper.GetInt("showroom.fps"))
	assert.Equal(t, "Stealth Black", viper.GetString("showroom.defaultVariant"))
	assert.Equal(t, "", viper.GetString("cache.redisAddr"))
	assert.Equal(t, 10*time.Minute, viper.GetDuration("cache.ttl"))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"http": { "addr": "127.0.0.1:9000" },
		"db": { "driver": "sqlite", "sqlitePath": "/tmp/x.db" },
		"showroom": { "model": "placeholder", "fps": 60 },
		"cache": { "redisAddr": "localhost:6379", "ttl": "30s" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "127.0.0.1:9000", GetString("http.addr"))

	db := DB()
	assert.Equal(t, "sqlite", db.Driver)
	assert.Equal(t, "/tmp/x.db", db.SqlitePath)
	assert.Equal(t, "localhost", db.Host)

	sr := Showroom()
	assert.Equal(t, "placeholder", sr.Model)
	assert.Equal(t, 60, sr.FPS)
	assert.Equal(t, "Stealth Black", sr.DefaultVariant)

	c := Cache()
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 30*time.Second, c.TTL)
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{not json`), 0644))

	err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("AUREX_HTTP_ADDR", ":7070")
	t.Setenv("AUREX_SHOWROOM_FPS", "24")

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, ":7070", GetString("http.addr"))
	assert.Equal(t, 24, GetInt("showroom.fps"))
}
