package session

import (
	"strings"
	"time"
)

// Config holds configuration for editing sessions and image uploads.
type Config struct {
	// SessionTTLMinutes is how long an idle editing session is kept.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" default:"60"`
	// ImagePrefix is the object prefix variation images are uploaded under.
	ImagePrefix string `mapstructure:"image_prefix" default:"variations"`
	// MaxImageBytes rejects larger uploads.
	MaxImageBytes int64 `mapstructure:"max_image_bytes" default:"5242880"`
	// Companies is a comma-separated list of company ids every session knows
	// about unless the session is created with its own list.
	Companies string `mapstructure:"companies" default:""`
}

// SessionTTL returns the idle timeout of a session.
func (c Config) SessionTTL() time.Duration {
	if c.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// CompanyIDs splits Companies, dropping blanks.
func (c Config) CompanyIDs() []string {
	var ids []string
	for _, id := range strings.Split(c.Companies, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
