package route

import (
	"math"

	"github.com/paulmach/orb"
)

// Meters per degree of latitude, and of longitude at the equator.
const metersPerDegree = 111320

// Transform is the shared affine projection from geographic coordinates into
// the scaled planar frame. It is anchored at the centroid of the routed path
// and applied identically to route points, stops, junctions and stubs.
type Transform struct {
	Lat0  float64
	Lon0  float64
	Scale float64
}

// Project maps a coordinate into the planar frame. North is negative z.
func (t Transform) Project(lat, lon float64) (x, z float64) {
	x = (lon - t.Lon0) * math.Cos(t.Lat0*math.Pi/180) * metersPerDegree * t.Scale
	z = -(lat - t.Lat0) * metersPerDegree * t.Scale
	return x, z
}

// BuildTransform computes the centroid anchor from the routed vertices and a
// uniform scale mapping the larger bounding-box span to targetSpan.
func BuildTransform(verts []GeoVertex, targetSpan float64) Transform {
	t := Transform{Scale: 1}
	if len(verts) == 0 {
		return t
	}
	for _, v := range verts {
		t.Lat0 += v.Lat
		t.Lon0 += v.Lon
	}
	t.Lat0 /= float64(len(verts))
	t.Lon0 /= float64(len(verts))

	x0, z0 := t.Project(verts[0].Lat, verts[0].Lon)
	bound := orb.Bound{Min: orb.Point{x0, z0}, Max: orb.Point{x0, z0}}
	for _, v := range verts[1:] {
		x, z := t.Project(v.Lat, v.Lon)
		bound = bound.Extend(orb.Point{x, z})
	}

	span := math.Max(bound.Max[0]-bound.Min[0], bound.Max[1]-bound.Min[1])
	if span > 0 {
		t.Scale = targetSpan / span
	}
	return t
}

// ProjectVertices applies the transform to the whole routed sequence.
func ProjectVertices(verts []GeoVertex, t Transform) []Point {
	pts := make([]Point, len(verts))
	for i, v := range verts {
		x, z := t.Project(v.Lat, v.Lon)
		pts[i] = Point{X: x, Z: z, Street: v.Street}
	}
	return pts
}
