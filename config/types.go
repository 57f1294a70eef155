package config

// OverpassConfig contains the geodata query service configuration
type OverpassConfig struct {
	Endpoint   string `yaml:"endpoint" validate:"omitempty,url"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
	MaxRetries int    `yaml:"maxRetries" validate:"gte=0"`
	CachePath  string `yaml:"cachePath"`
}

// BoundingBox is the geographic region the dataset is fetched for.
type BoundingBox struct {
	MinLat float64 `yaml:"minLat" validate:"gte=-90,lte=90"`
	MinLon float64 `yaml:"minLon" validate:"gte=-180,lte=180"`
	MaxLat float64 `yaml:"maxLat" validate:"gte=-90,lte=90"`
	MaxLon float64 `yaml:"maxLon" validate:"gte=-180,lte=180"`
}

// IsZero reports whether the box was left unset in the config file.
func (b BoundingBox) IsZero() bool {
	return b.MinLat == 0 && b.MinLon == 0 && b.MaxLat == 0 && b.MaxLon == 0
}

// Waypoint is a caller-supplied approximate loop anchor. It does not have to
// lie on any mapped street; the router snaps it to the nearest connected node.
type Waypoint struct {
	Lat   float64 `yaml:"lat"`
	Lon   float64 `yaml:"lon"`
	Label string  `yaml:"label"`
}

// Junction is a manually curated roundabout or major intersection zone.
// Junctions are not derived from the street graph.
type Junction struct {
	Lat          float64 `yaml:"lat"`
	Lon          float64 `yaml:"lon"`
	RadiusMeters float64 `yaml:"radiusMeters" validate:"gt=0"`
	Name         string  `yaml:"name"`
	Arms         int     `yaml:"arms" validate:"gte=0"`
}

// ProjectionConfig controls the shared planar frame.
type ProjectionConfig struct {
	// TargetSpan is the planar size, in game units, that the larger axis of
	// the routed path's bounding box is scaled to.
	TargetSpan float64 `yaml:"targetSpan" validate:"gt=0"`
}

// RouteConfig contains polyline cleanup and resampling parameters.
// All distances are in scaled planar units.
type RouteConfig struct {
	ResampleInterval      float64 `yaml:"resampleInterval" validate:"gt=0"`
	CleanupSegmentEpsilon float64 `yaml:"cleanupSegmentEpsilon" validate:"gt=0"`
	CleanupMergeDistance  float64 `yaml:"cleanupMergeDistance" validate:"gt=0"`
	LoopCloseTolerance    float64 `yaml:"loopCloseTolerance" validate:"gt=0"`
	// GapWarnTolerance is the slack over ResampleInterval before a gap
	// between consecutive emitted points is reported as a quality warning.
	GapWarnTolerance float64 `yaml:"gapWarnTolerance" validate:"gte=0"`
	MinRoutePoints   int     `yaml:"minRoutePoints" validate:"gt=0"`
}

// StopsConfig contains stop matching parameters, in scaled planar units.
type StopsConfig struct {
	MinSpacing       float64 `yaml:"minSpacing" validate:"gt=0"`
	MaxMatchDistance float64 `yaml:"maxMatchDistance" validate:"gt=0"`
	DedupIndexWindow int     `yaml:"dedupIndexWindow" validate:"gte=0"`
	MinCount         int     `yaml:"minCount" validate:"gt=0"`
	// SynthesisStride is the polyline index stride used to synthesize stops
	// when matching yields fewer than MinCount.
	SynthesisStride int `yaml:"synthesisStride" validate:"gt=0"`
}

// StubsConfig contains side-road stub derivation parameters.
type StubsConfig struct {
	MinLength  float64 `yaml:"minLength" validate:"gt=0"`
	MaxLength  float64 `yaml:"maxLength" validate:"gt=0"`
	MinSpacing float64 `yaml:"minSpacing" validate:"gt=0"`
	MaxCount   int     `yaml:"maxCount" validate:"gt=0"`
}

// ArtifactConfig controls the emitted payload.
type ArtifactConfig struct {
	OutputPath    string  `yaml:"outputPath"`
	BoundsPadding float64 `yaml:"boundsPadding" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Overpass    OverpassConfig   `yaml:"overpass"`
	BBox        BoundingBox      `yaml:"bbox"`
	Waypoints   []Waypoint       `yaml:"waypoints" validate:"min=2,dive"`
	RoadClasses []string         `yaml:"roadClasses"`
	Projection  ProjectionConfig `yaml:"projection"`
	Route       RouteConfig      `yaml:"route"`
	Stops       StopsConfig      `yaml:"stops"`
	Junctions   []Junction       `yaml:"junctions" validate:"dive"`
	Stubs       StubsConfig      `yaml:"stubs"`
	Artifact    ArtifactConfig   `yaml:"artifact"`
}
