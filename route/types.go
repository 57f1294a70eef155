package route

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// GeoVertex is one routed node before projection.
type GeoVertex struct {
	Lat    float64
	Lon    float64
	Street string
}

// Point is one polyline vertex in scaled planar units. Insertion order is
// semantic: it defines direction of travel and street attribution.
type Point struct {
	X      float64
	Z      float64
	Street string
}

// Planar returns the vertex as an orb point for geometry helpers.
func (p Point) Planar() orb.Point { return orb.Point{p.X, p.Z} }

// Dist returns the Euclidean planar distance between two vertices.
func Dist(a, b Point) float64 { return planar.Distance(a.Planar(), b.Planar()) }
