// Package config loads the arbor configuration file and applies environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/arbor/internal/config/colors"
	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

// Backends
const (
	BackendSOAP  = "soap"
	BackendLocal = "local"
)

// Defaults
const (
	DefaultCacheTTLSeconds       = 300
	DefaultRequestTimeoutSeconds = 15
	DefaultWorkers               = 4
	DefaultQueueSize             = 64
	DefaultListen                = ":8282"
	DefaultLogLevel              = "info"
)

// Config represents the application configuration
type Config struct {
	Backend               string             `yaml:"backend"`
	CacheTTLSeconds       int                `yaml:"cache_ttl_seconds"`
	Endpoints             Endpoints          `yaml:"endpoints"`
	RequestTimeoutSeconds int                `yaml:"request_timeout_seconds"`
	Workers               int                `yaml:"workers"`
	QueueSize             int                `yaml:"queue_size"`
	DatabasePath          string             `yaml:"database_path,omitempty"`
	Server                Server             `yaml:"server"`
	LogLevel              string             `yaml:"log_level"`
	KeyMappings           KeyMappings        `yaml:"key_mappings"`
	ColorScheme           colors.ColorScheme `yaml:"theme"`
}

// Endpoints are the SOAP service URLs. An empty ConservationStates uses Species.
type Endpoints struct {
	Species            string `yaml:"species"`
	Zones              string `yaml:"zones"`
	ConservationStates string `yaml:"conservation_states,omitempty"`
}

// Server configures `arbor serve`
type Server struct {
	Listen string `yaml:"listen"`
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// CacheTTL returns the cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SOAPEndpoints converts the configured URLs for the SOAP client
func (c *Config) SOAPEndpoints() soap.Endpoints {
	states := c.Endpoints.ConservationStates
	if states == "" {
		states = c.Endpoints.Species
	}
	return soap.Endpoints{
		Species:            c.Endpoints.Species,
		Zones:              c.Endpoints.Zones,
		ConservationStates: states,
	}
}

// loadThemeFile merges the theme from ARBOR_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv("ARBOR_THEME_FILE")
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme colors.ColorScheme `yaml:"theme"`
	}
	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// Load reads the config from the user's config directory. A missing file
// yields the defaults. Environment overrides are applied last, then the
// result is validated.
func Load() (*Config, error) {
	config := &Config{}

	configPath, err := getConfigPath()
	if err == nil {
		data, readErr := os.ReadFile(configPath)
		switch {
		case readErr == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
			}
		case !os.IsNotExist(readErr):
			return nil, readErr
		}
	}

	loadThemeFile(config)
	config.applyDefaults()

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// Path returns where Load and Save look for the file
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "arbor", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "arbor", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSOAP
	}
	if c.CacheTTLSeconds == 0 {
		c.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if c.Endpoints.Species == "" {
		c.Endpoints.Species = soap.DefaultSpeciesEndpoint
	}
	if c.Endpoints.Zones == "" {
		c.Endpoints.Zones = soap.DefaultZonesEndpoint
	}
	if c.RequestTimeoutSeconds == 0 {
		c.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.QueueSize == 0 {
		c.QueueSize = DefaultQueueSize
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}

// applyEnv overrides values from ARBOR_* variables
func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"ARBOR_BACKEND":     &c.Backend,
		"ARBOR_SPECIES_URL": &c.Endpoints.Species,
		"ARBOR_ZONES_URL":   &c.Endpoints.Zones,
		"ARBOR_STATES_URL":  &c.Endpoints.ConservationStates,
		"ARBOR_DB":          &c.DatabasePath,
		"ARBOR_LISTEN":      &c.Server.Listen,
		"ARBOR_LOG_LEVEL":   &c.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"ARBOR_CACHE_TTL":       &c.CacheTTLSeconds,
		"ARBOR_REQUEST_TIMEOUT": &c.RequestTimeoutSeconds,
		"ARBOR_WORKERS":         &c.Workers,
		"ARBOR_QUEUE_SIZE":      &c.QueueSize,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not a number", key, v)
		}
		*dst = n
	}
	return nil
}
