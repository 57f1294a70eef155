package route

import (
	"math"

	"github.com/paulmach/osm"

	"github.com/urban-loopworks/osm-to-loop/config"
	"github.com/urban-loopworks/osm-to-loop/graph"
)

// Junction is a curated roundabout zone in the planar frame.
type Junction struct {
	X      float64
	Z      float64
	Radius float64
	Name   string
	Arms   int
}

// ProjectJunctions maps the curated junction list into the planar frame,
// scaling each radius with the shared transform.
func ProjectJunctions(js []config.Junction, t Transform) []Junction {
	out := make([]Junction, len(js))
	for i, j := range js {
		x, z := t.Project(j.Lat, j.Lon)
		out[i] = Junction{
			X:      x,
			Z:      z,
			Radius: j.RadiusMeters * t.Scale,
			Name:   j.Name,
			Arms:   j.Arms,
		}
	}
	return out
}

// Stub is a decorative side-road segment branching off the route.
type Stub struct {
	X      float64
	Z      float64
	Angle  float64 // departure angle in radians
	Length float64
}

// StubParams are the stub derivation constraints, in scaled planar units.
type StubParams struct {
	MinLength  float64
	MaxLength  float64
	MinSpacing float64
	MaxCount   int
}

// DetectStubs derives side-road stubs: for every routed node, every outgoing
// edge whose far endpoint is not itself on the route departs the loop and is
// a stub candidate. Candidates inside a junction radius, backed by an edge
// shorter than MinLength, or within MinSpacing of an accepted stub are
// suppressed. Stub length is varied deterministically from the departure
// coordinates so repeated runs emit identical output.
func DetectStubs(g *graph.Graph, path []osm.NodeID, t Transform, junctions []Junction, p StubParams) []Stub {
	onRoute := make(map[osm.NodeID]bool, len(path))
	for _, id := range path {
		onRoute[id] = true
	}

	var out []Stub
	seen := make(map[osm.NodeID]bool, len(path))
	for _, id := range path {
		if seen[id] {
			// The closing vertex repeats the first; don't derive twice.
			continue
		}
		seen[id] = true
		from := g.Nodes[id]
		ox, oz := t.Project(from.Lat, from.Lon)
		for _, e := range g.Adj[id] {
			if onRoute[e.To] {
				continue
			}
			if len(out) >= p.MaxCount {
				return out
			}
			if e.Meters*t.Scale < p.MinLength {
				continue
			}
			if insideJunction(ox, oz, junctions) || tooClose(ox, oz, out, p.MinSpacing) {
				continue
			}
			far := g.Nodes[e.To]
			fx, fz := t.Project(far.Lat, far.Lon)
			out = append(out, Stub{
				X:      ox,
				Z:      oz,
				Angle:  math.Atan2(fz-oz, fx-ox),
				Length: stubLength(ox, oz, p.MinLength, p.MaxLength),
			})
		}
	}
	return out
}

func insideJunction(x, z float64, junctions []Junction) bool {
	for _, j := range junctions {
		if math.Hypot(x-j.X, z-j.Z) <= j.Radius {
			return true
		}
	}
	return false
}

func tooClose(x, z float64, accepted []Stub, minSpacing float64) bool {
	for _, s := range accepted {
		if math.Hypot(x-s.X, z-s.Z) < minSpacing {
			return true
		}
	}
	return false
}

// stubLength hashes the departure coordinates into [min, max]. Deterministic
// by construction: no randomness may leak into the artifact.
func stubLength(x, z, min, max float64) float64 {
	h := math.Sin(x*12.9898+z*78.233) * 43758.5453
	frac := h - math.Floor(h)
	return min + frac*(max-min)
}
