package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultRoadClasses is the allow-list of vehicle-driveable highway
// classifications used when the config file does not override it.
var DefaultRoadClasses = []string{
	"motorway", "trunk", "primary", "secondary", "tertiary",
	"unclassified", "residential", "living_street",
	"motorway_link", "trunk_link", "primary_link", "secondary_link", "tertiary_link",
}

// Default returns the built-in configuration values. A loaded file only needs
// to override the fields it cares about; everything else keeps these.
func Default() AppConfig {
	return AppConfig{
		Overpass: OverpassConfig{
			Endpoint:   "https://overpass-api.de/api/interpreter",
			TimeoutMS:  30000,
			MaxRetries: 4,
			CachePath:  "data/overpass.json",
		},
		RoadClasses: DefaultRoadClasses,
		Projection:  ProjectionConfig{TargetSpan: 4000},
		Route: RouteConfig{
			ResampleInterval:      25,
			CleanupSegmentEpsilon: 0.01,
			CleanupMergeDistance:  0.5,
			LoopCloseTolerance:    5,
			GapWarnTolerance:      1,
			MinRoutePoints:        20,
		},
		Stops: StopsConfig{
			MinSpacing:       120,
			MaxMatchDistance: 60,
			DedupIndexWindow: 3,
			MinCount:         4,
			SynthesisStride:  40,
		},
		Stubs: StubsConfig{
			MinLength:  8,
			MaxLength:  30,
			MinSpacing: 40,
			MaxCount:   120,
		},
		Artifact: ArtifactConfig{
			OutputPath:    "data/loop.json",
			BoundsPadding: 50,
		},
	}
}

// Load reads and validates the application configuration from the given YAML
// file, layered over Default().
func Load(path string) (AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks structural constraints the pipeline depends on.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if cfg.BBox.IsZero() {
		return errors.New("validate config: bbox is required")
	}
	if cfg.BBox.MinLat >= cfg.BBox.MaxLat || cfg.BBox.MinLon >= cfg.BBox.MaxLon {
		return errors.New("validate config: bbox min must be south-west of max")
	}
	if cfg.Stubs.MinLength > cfg.Stubs.MaxLength {
		return errors.New("validate config: stubs.minLength exceeds stubs.maxLength")
	}
	return nil
}
