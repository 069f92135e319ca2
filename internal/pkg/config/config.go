package config

import (
	"io"
	"time"
)

// Config retrieves typed configuration values by dotted key
// (e.g. "mail.host"). Missing keys yield the zero value.
type Config interface {
	io.Closer

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond returns an integer value for key interpreted as seconds.
	GetSecond(key string) time.Duration

	// GetArray returns the value for key as a string slice. Both YAML lists and
	// comma separated strings ("a,b,c") are accepted; blanks are dropped.
	GetArray(key string) []string

	// GetMap returns the value for key parsed from "k1:v1,k2:v2".
	GetMap(key string) map[string]string
}

// StringOr returns cfg.GetString(key), or def when the value is empty.
func StringOr(cfg Config, key, def string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return def
}
