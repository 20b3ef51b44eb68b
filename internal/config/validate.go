package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid configuration")

// Validate reports every problem in the config at once
func (c *Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch c.Backend {
	case BackendSOAP, BackendLocal:
	default:
		add("backend must be %q or %q, got %q", BackendSOAP, BackendLocal, c.Backend)
	}
	if c.CacheTTLSeconds <= 0 {
		add("cache_ttl_seconds must be positive, got %d", c.CacheTTLSeconds)
	}
	if c.RequestTimeoutSeconds <= 0 {
		add("request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	}
	if c.Workers <= 0 {
		add("workers must be positive, got %d", c.Workers)
	}
	if c.QueueSize <= 0 {
		add("queue_size must be positive, got %d", c.QueueSize)
	}
	if c.Backend == BackendSOAP {
		for name, raw := range map[string]string{
			"endpoints.species":             c.Endpoints.Species,
			"endpoints.zones":               c.Endpoints.Zones,
			"endpoints.conservation_states": c.Endpoints.ConservationStates,
		} {
			if raw == "" {
				continue
			}
			if err := checkURL(raw); err != nil {
				add("%s: %v", name, err)
			}
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		add("log_level: %v", err)
	}
	if dups := c.KeyMappings.duplicates(); len(dups) > 0 {
		add("key_mappings: keys bound more than once: %s", strings.Join(dups, ", "))
	}

	return result.ErrorOrNil()
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}
