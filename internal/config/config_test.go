package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/arbor/internal/remote/soap"
)

// isolate points the config directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{
		"ARBOR_BACKEND", "ARBOR_CACHE_TTL", "ARBOR_SPECIES_URL", "ARBOR_ZONES_URL",
		"ARBOR_STATES_URL", "ARBOR_REQUEST_TIMEOUT", "ARBOR_WORKERS", "ARBOR_QUEUE_SIZE",
		"ARBOR_DB", "ARBOR_LISTEN", "ARBOR_LOG_LEVEL", "ARBOR_THEME_FILE",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "arbor")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, "/", defaults.Search)
	assert.Equal(t, "R", defaults.RefreshAll)
	assert.Equal(t, "n", defaults.Create)
	assert.Empty(t, defaults.duplicates())
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSOAP, cfg.Backend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, soap.DefaultSpeciesEndpoint, cfg.Endpoints.Species)
	assert.Equal(t, soap.DefaultZonesEndpoint, cfg.Endpoints.Zones)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultQueueSize, cfg.QueueSize)
	assert.Equal(t, ":8282", cfg.Server.Listen)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.Equal(t, "default", cfg.ColorScheme.Preset)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `backend: local
cache_ttl_seconds: 60
endpoints:
  zones: "http://forest.example:9000/zones"
key_mappings:
  quit: "x"
  search: "s"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Backend)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
	assert.Equal(t, "http://forest.example:9000/zones", cfg.Endpoints.Zones)
	assert.Equal(t, soap.DefaultSpeciesEndpoint, cfg.Endpoints.Species, "unspecified values use defaults")
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "s", cfg.KeyMappings.Search)
	assert.Equal(t, "d", cfg.KeyMappings.Delete)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "backend: [soap\n")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "workers: 2\n")

	t.Setenv("ARBOR_WORKERS", "8")
	t.Setenv("ARBOR_CACHE_TTL", "30")
	t.Setenv("ARBOR_SPECIES_URL", "https://registry.example/species")
	t.Setenv("ARBOR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL())
	assert.Equal(t, "https://registry.example/species", cfg.Endpoints.Species)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_EnvNotANumber(t *testing.T) {
	isolate(t)
	t.Setenv("ARBOR_QUEUE_SIZE", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ARBOR_QUEUE_SIZE")
}

func TestSOAPEndpoints_StatesFallBackToSpecies(t *testing.T) {
	cfg := Default()
	assert.Equal(t, cfg.Endpoints.Species, cfg.SOAPEndpoints().ConservationStates)

	cfg.Endpoints.ConservationStates = "http://states.example/svc"
	assert.Equal(t, "http://states.example/svc", cfg.SOAPEndpoints().ConservationStates)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Backend = "carrier-pigeon"
	cfg.Workers = 0
	cfg.QueueSize = -1
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)
}

func TestValidate_BadEndpoint(t *testing.T) {
	cfg := Default()
	cfg.Endpoints.Zones = "ftp://zones"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoints.zones")

	cfg.Backend = BackendLocal
	assert.NoError(t, cfg.Validate(), "endpoints are ignored by the local backend")
}

func TestValidate_DuplicateKeys(t *testing.T) {
	cfg := Default()
	cfg.KeyMappings.Refresh = cfg.KeyMappings.Delete

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bound more than once")
}

func TestSaveConfig(t *testing.T) {
	dir := isolate(t)

	cfg := Default()
	cfg.Backend = BackendLocal
	cfg.KeyMappings.Quit = "x"

	require.NoError(t, cfg.Save())
	assert.FileExists(t, filepath.Join(dir, "arbor", "config.yaml"))

	cfg2, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendLocal, cfg2.Backend)
	assert.Equal(t, "x", cfg2.KeyMappings.Quit)
	assert.Equal(t, cfg.CacheTTLSeconds, cfg2.CacheTTLSeconds)
}

func TestThemeFileLoading(t *testing.T) {
	isolate(t)

	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(themePath, []byte(`theme:
  accent: "#FF0000"
  delete: "#00FF00"
`), 0o644))
	t.Setenv("ARBOR_THEME_FILE", themePath)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#FF0000", cfg.ColorScheme.Accent)
	assert.Equal(t, "#00FF00", cfg.ColorScheme.Delete)
	assert.NotEmpty(t, cfg.ColorScheme.Border, "other colors keep their defaults")
}

func TestThemePreset(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "theme:\n  preset: monochrome\n")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, MonochromeColorScheme(), cfg.ColorScheme)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}
