package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides. The key
// "database.url" is overridden by DINEBITE_DATABASE_URL.
const EnvPrefix = "DINEBITE"

// ErrConfigType is returned when NewViperFromBytes gets no format.
var ErrConfigType = errors.New("config: type is required")

// Viper implements Config on spf13/viper.
type Viper struct {
	v *viper.Viper
}

// NewViper reads the file at path and reloads it whenever it changes.
func NewViper(path string) (*Viper, error) {
	v := newViper()
	v.SetConfigFile(filepath.Clean(path))

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		slog.Info("config reloaded", "path", e.Name, "op", e.Op.String())
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes reads configuration held in memory, mostly for tests.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, ErrConfigType
	}

	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func (c *Viper) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *Viper) GetString(key string) string { return c.v.GetString(key) }
func (c *Viper) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *Viper) GetInt64(key string) int64   { return c.v.GetInt64(key) }
func (c *Viper) GetInt32(key string) int32   { return c.v.GetInt32(key) }

func (c *Viper) GetFloat64(key string) float64 { return c.v.GetFloat64(key) }

func (c *Viper) GetSecond(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Second
}

func (c *Viper) GetMinute(key string) time.Duration {
	return time.Duration(c.v.GetInt64(key)) * time.Minute
}

func (c *Viper) GetArray(key string) []string {
	var raw []string
	if s, ok := c.v.Get(key).(string); ok {
		raw = strings.Split(s, ",")
	} else {
		raw = c.v.GetStringSlice(key)
	}

	return lo.Compact(lo.Map(raw, func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

func (c *Viper) GetMap(key string) map[string]string {
	out := make(map[string]string)
	for _, pair := range c.GetArray(key) {
		k, v, ok := strings.Cut(pair, ":")
		if ok {
			out[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return out
}

func (c *Viper) Close() error { return nil }
