package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
bbox:
  minLat: 51.74
  minLon: -0.36
  maxLat: 51.76
  maxLon: -0.32
waypoints:
  - { lat: 51.75, lon: -0.34, label: "A" }
  - { lat: 51.755, lon: -0.33, label: "B" }
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.Endpoint)
	assert.Equal(t, 4, cfg.Overpass.MaxRetries)
	assert.Equal(t, 4000.0, cfg.Projection.TargetSpan)
	assert.Equal(t, 25.0, cfg.Route.ResampleInterval)
	assert.Equal(t, DefaultRoadClasses, cfg.RoadClasses)
	assert.Len(t, cfg.Waypoints, 2)
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
projection:
  targetSpan: 1500
roadClasses: [residential]
`))
	require.NoError(t, err)
	assert.Equal(t, 1500.0, cfg.Projection.TargetSpan)
	assert.Equal(t, []string{"residential"}, cfg.RoadClasses)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing bbox",
			body: `
waypoints:
  - { lat: 1, lon: 1, label: "A" }
  - { lat: 2, lon: 2, label: "B" }
`,
		},
		{
			name: "inverted bbox",
			body: `
bbox: { minLat: 52, minLon: 0, maxLat: 51, maxLon: 1 }
waypoints:
  - { lat: 1, lon: 1, label: "A" }
  - { lat: 2, lon: 2, label: "B" }
`,
		},
		{
			name: "single waypoint",
			body: `
bbox: { minLat: 51, minLon: 0, maxLat: 52, maxLon: 1 }
waypoints:
  - { lat: 1, lon: 1, label: "A" }
`,
		},
		{
			name: "stub lengths inverted",
			body: minimalConfig + `
stubs: { minLength: 50, maxLength: 10, minSpacing: 40, maxCount: 120 }
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
