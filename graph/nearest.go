package graph

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"
	"github.com/paulmach/osm"
)

// nearestCandidates is how many index hits are re-ranked by great-circle
// distance. The index metric is already a close local approximation, so a
// small candidate set is enough to absorb its residual error.
const nearestCandidates = 4

// nodePoint adapts a connected node for the quadtree, in the index's local
// projection.
type nodePoint struct {
	id osm.NodeID
	pt orb.Point
}

func (np nodePoint) Point() orb.Point { return np.pt }

// indexPoint maps a coordinate into the index frame. Longitude is scaled by
// the cosine of the dataset's reference latitude so Euclidean distance in the
// index approximates great-circle distance instead of degree-space distance,
// which overweights north-south separation.
func (g *Graph) indexPoint(lat, lon float64) orb.Point {
	return orb.Point{lon * g.lonScale, lat}
}

// buildIndex populates the quadtree over connected nodes only. Insertion
// order is sorted by node ID so lookups are reproducible run to run.
func (g *Graph) buildIndex() {
	if len(g.Adj) == 0 {
		return
	}
	ids := make([]osm.NodeID, 0, len(g.Adj))
	var latSum float64
	for id := range g.Adj {
		ids = append(ids, id)
		latSum += g.Nodes[id].Lat
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	g.lonScale = math.Cos(latSum / float64(len(ids)) * math.Pi / 180)

	first := g.indexPoint(g.Nodes[ids[0]].Lat, g.Nodes[ids[0]].Lon)
	bound := orb.Bound{Min: first, Max: first}
	pts := make([]nodePoint, 0, len(ids))
	for _, id := range ids {
		n := g.Nodes[id]
		p := g.indexPoint(n.Lat, n.Lon)
		bound = bound.Extend(p)
		pts = append(pts, nodePoint{id: id, pt: p})
	}

	g.qt = quadtree.New(bound)
	for _, np := range pts {
		_ = g.qt.Add(np)
	}
}

// NearestConnected returns the connected node closest to the coordinate by
// great-circle distance. The quadtree narrows the search to a few candidates
// which are then re-ranked with Haversine, so the index never changes which
// node wins. Unconnected nodes are never candidates. ok is false when the
// graph has no connected nodes at all.
func (g *Graph) NearestConnected(lat, lon float64) (Node, bool) {
	if g.qt == nil {
		return Node{}, false
	}
	found := g.qt.KNearest(nil, g.indexPoint(lat, lon), nearestCandidates)
	if len(found) == 0 {
		return Node{}, false
	}

	best := g.Nodes[found[0].(nodePoint).id]
	bestDist := Haversine(lat, lon, best.Lat, best.Lon)
	for _, f := range found[1:] {
		n := g.Nodes[f.(nodePoint).id]
		if d := Haversine(lat, lon, n.Lat, n.Lon); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, true
}
