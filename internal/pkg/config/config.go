// Package config reads typed settings by dotted key, for example
// "modules.identity.password_reset.otp_ttl_minutes".
package config

import (
	"io"
	"time"
)

// Config is read-only access to application settings. Missing keys return the
// zero value of the requested type.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetInt64(key string) int64
	GetInt32(key string) int32
	GetFloat64(key string) float64

	// GetSecond and GetMinute read an integer and scale it.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration

	// GetArray reads "a,b,c" or a YAML sequence.
	GetArray(key string) []string

	// GetMap reads "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}
