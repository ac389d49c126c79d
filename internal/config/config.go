package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the optional config file looked up in the config directory.
const FileName = "showroom.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. AUREX_HTTP_ADDR.
const EnvPrefix = "AUREX"

// DBConfig holds database connection settings.
type DBConfig struct {
	Driver     string `json:"driver" mapstructure:"driver"`
	Host       string `json:"host" mapstructure:"host"`
	Port       string `json:"port" mapstructure:"port"`
	Username   string `json:"username" mapstructure:"username"`
	Password   string `json:"password" mapstructure:"password"`
	Database   string `json:"database" mapstructure:"database"`
	SqlitePath string `json:"sqlitePath" mapstructure:"sqlitePath"`
}

// ShowroomConfig selects the vehicle presentation.
type ShowroomConfig struct {
	Model          string `json:"model" mapstructure:"model"`
	FPS            int    `json:"fps" mapstructure:"fps"`
	DefaultVariant string `json:"defaultVariant" mapstructure:"defaultVariant"`
}

// CacheConfig holds GLB cache settings. An empty RedisAddr selects the
// in-process cache.
type CacheConfig struct {
	RedisAddr string        `json:"redisAddr" mapstructure:"redisAddr"`
	TTL       time.Duration `json:"ttl" mapstructure:"ttl"`
}

// Load sets default values, reads configDir/showroom.cfg.json when present
// and applies AUREX_* environment overrides.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("http.addr", ":8080")

	viper.SetDefault("db.driver", "postgres")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "aurex")
	viper.SetDefault("db.sqlitePath", "./aurex.db")

	viper.SetDefault("showroom.model", "aurex")
	viper.SetDefault("showroom.fps", 30)
	viper.SetDefault("showroom.defaultVariant", "Stealth Black")

	viper.SetDefault("cache.redisAddr", "")
	viper.SetDefault("cache.ttl", "10m")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// DB returns the database section.
func DB() DBConfig {
	return DBConfig{
		Driver:     viper.GetString("db.driver"),
		Host:       viper.GetString("db.host"),
		Port:       viper.GetString("db.port"),
		Username:   viper.GetString("db.username"),
		Password:   viper.GetString("db.password"),
		Database:   viper.GetString("db.database"),
		SqlitePath: viper.GetString("db.sqlitePath"),
	}
}

// Showroom returns the showroom section.
func Showroom() ShowroomConfig {
	return ShowroomConfig{
		Model:          viper.GetString("showroom.model"),
		FPS:            viper.GetInt("showroom.fps"),
		DefaultVariant: viper.GetString("showroom.defaultVariant"),
	}
}

// Cache returns the cache section.
func Cache() CacheConfig {
	return CacheConfig{
		RedisAddr: viper.GetString("cache.redisAddr"),
		TTL:       viper.GetDuration("cache.ttl"),
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}
