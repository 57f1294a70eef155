package graph

import (
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// Build converts the raw dataset into an adjacency graph. Ways whose highway
// class is not in the allow-list contribute no edges; their nodes stay in the
// node table but remain unconnected.
func Build(data *osm.OSM, roadClasses []string, log *zap.Logger) *Graph {
	allowed := make(map[string]bool, len(roadClasses))
	for _, c := range roadClasses {
		allowed[c] = true
	}

	g := newGraph()
	for _, n := range data.Nodes {
		g.Nodes[n.ID] = Node{ID: n.ID, Lat: n.Lat, Lon: n.Lon}
	}

	accepted := 0
	for _, w := range data.Ways {
		if !allowed[w.Tags.Find("highway")] {
			continue
		}
		accepted++
		street := w.Tags.Find("name")
		for i := 1; i < len(w.Nodes); i++ {
			a, okA := g.Nodes[w.Nodes[i-1].ID]
			b, okB := g.Nodes[w.Nodes[i].ID]
			if !okA || !okB {
				// Way clipped at the bounding box edge.
				continue
			}
			meters := Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
			g.addEdge(a.ID, b.ID, meters, street)
			g.addEdge(b.ID, a.ID, meters, street)
		}
	}

	g.buildIndex()

	log.Info("built street graph",
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("connected", g.ConnectedCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Int("acceptedWays", accepted),
		zap.Int("totalWays", len(data.Ways)))
	return g
}
