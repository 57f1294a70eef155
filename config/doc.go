// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// Every tunable of the pipeline lives here rather than as a hidden literal:
// the bounding box and waypoints, the planar target span, resampling and
// cleanup parameters, stop matching constraints, the curated junction list,
// and stub derivation limits. Distances in RouteConfig, StopsConfig and
// StubsConfig are expressed in scaled planar units; junction radii are given
// in meters and scaled when projected.
package config
