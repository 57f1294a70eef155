package graph

import (
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/orb/quadtree"
)

// Node is one geographic node from the dataset. Immutable once loaded.
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64
}

// Edge is a single directed adjacency record. Both directions of a way
// segment are inserted as separate records.
type Edge struct {
	From   osm.NodeID
	To     osm.NodeID
	Meters float64
	Street string
}

// Graph maps every node key to its outgoing edges. Nodes referenced only by
// rejected ways stay in Nodes but never appear in Adj, which keeps them out
// of nearest-node searches.
type Graph struct {
	Nodes map[osm.NodeID]Node
	Adj   map[osm.NodeID][]Edge

	qt *quadtree.Quadtree
	// cosine of the reference latitude the nearest-node index projects with
	lonScale float64
}

func newGraph() *Graph {
	return &Graph{
		Nodes: make(map[osm.NodeID]Node),
		Adj:   make(map[osm.NodeID][]Edge),
	}
}

func (g *Graph) addEdge(from, to osm.NodeID, meters float64, street string) {
	g.Adj[from] = append(g.Adj[from], Edge{From: from, To: to, Meters: meters, Street: street})
}

// ConnectedCount returns the number of nodes with at least one edge.
func (g *Graph) ConnectedCount() int { return len(g.Adj) }

// EdgeCount returns the total number of directed edge records.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.Adj {
		n += len(edges)
	}
	return n
}

const earthRadiusMeters = 6371000

// Haversine returns the great-circle distance in meters between two
// coordinates given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}
