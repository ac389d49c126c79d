package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurex-showroom/internal/config"
)

type widget struct {
	ID        uint `gorm:"primarykey"`
	Label     string
	CreatedAt time.Time
}

func TestConnectSqliteDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	m := NewManager(config.DBConfig{Driver: "sqlite", SqlitePath: path}, zerolog.Nop())

	require.NoError(t, m.Connect())
	t.Cleanup(func() { _ = m.Close() })

	assert.True(t, m.IsValid)
	assert.True(t, m.UsingSqlite)
	assert.Equal(t, "sqlite", m.DB.Dialector.Name())

	require.NoError(t, m.Setup(&widget{}))
	require.NoError(t, m.DB.Create(&widget{Label: "a"}).Error)

	var count int64
	require.NoError(t, m.DB.Model(&widget{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConnectFallsBackToSqlite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.db")
	m := NewManager(config.DBConfig{
		Driver:     "postgres",
		Host:       "127.0.0.1",
		Port:       "1",
		Username:   "nobody",
		Password:   "nothing",
		Database:   "missing",
		SqlitePath: path,
	}, zerolog.Nop())

	require.NoError(t, m.Connect())
	t.Cleanup(func() { _ = m.Close() })

	assert.True(t, m.IsValid)
	assert.True(t, m.UsingSqlite)
	require.NoError(t, m.SqlDB.Ping())
}

func TestSetupWithoutConnect(t *testing.T) {
	m := NewManager(config.DBConfig{}, zerolog.Nop())
	assert.Error(t, m.Setup(&widget{}))
	assert.NoError(t, m.Close())
}
