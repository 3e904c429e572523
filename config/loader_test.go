package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
sources:
  - name: metro
    tripUpdatesURL: https://example.com/trip-updates
    headers:
      api_key: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, DefaultRefreshIntervalSec, cfg.Sources[0].RefreshIntervalSec)
	assert.Equal(t, DefaultTimeoutSec, cfg.Sources[0].TimeoutSec)
	assert.Equal(t, "secret", cfg.Sources[0].Headers["api_key"])
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
sources:
  - name: metro
    tripUpdatesURL: https://example.com/tu
    vehiclePositionsURL: https://example.com/vp
    serviceAlertsURL: https://example.com/sa
    refreshIntervalSec: 60
    timeoutSec: 20
departures:
  - name: Next Bus
    source: metro
    stopID: S1
    routeID: "42"
    directionID: 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Sources[0].RefreshIntervalSec)
	require.Len(t, cfg.Departures, 1)
	require.NotNil(t, cfg.Departures[0].DirectionID)
	assert.Equal(t, uint32(0), *cfg.Departures[0].DirectionID)

	src, ok := cfg.Source("metro")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/vp", src.VehiclePositionsURL)
	_, ok = cfg.Source("ghost")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "no sources",
			contents: `server: {port: 8080}`,
		},
		{
			name: "missing trip updates URL",
			contents: `
sources:
  - name: metro
    vehiclePositionsURL: https://example.com/vp
`,
		},
		{
			name: "malformed URL",
			contents: `
sources:
  - name: metro
    tripUpdatesURL: not-a-url
`,
		},
		{
			name: "URL without scheme",
			contents: `
sources:
  - name: metro
    tripUpdatesURL: example.com/feed
`,
		},
		{
			name: "malformed optional URL",
			contents: `
sources:
  - name: metro
    tripUpdatesURL: https://example.com/tu
    vehiclePositionsURL: not-a-url
`,
		},
		{
			name: "duplicate source names",
			contents: `
sources:
  - name: metro
    tripUpdatesURL: https://example.com/a
  - name: metro
    tripUpdatesURL: https://example.com/b
`,
		},
		{
			name: "departure references unknown source",
			contents: `
sources:
  - name: metro
    tripUpdatesURL: https://example.com/tu
departures:
  - name: Next Bus
    source: ghost
    stopID: S1
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
