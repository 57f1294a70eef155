package graph

import (
	"errors"
	"strings"

	"github.com/paulmach/osm"
	"go.uber.org/zap"

	"github.com/urban-loopworks/osm-to-loop/config"
)

// RoutedPath is the stitched node sequence for the full loop.
type RoutedPath struct {
	Steps []Step
	// FailedPairs counts waypoint pairs with no connecting path. Their
	// contribution is omitted but the route is still usable.
	FailedPairs int
}

// NodeIDs returns the routed node sequence in order.
func (rp *RoutedPath) NodeIDs() []osm.NodeID {
	ids := make([]osm.NodeID, len(rp.Steps))
	for i, s := range rp.Steps {
		ids[i] = s.Node
	}
	return ids
}

// RouteLoop snaps every waypoint to its nearest connected node, routes
// between consecutive pairs (wrapping around to close the loop), and
// concatenates the results. Unreachable pairs are logged and skipped.
func (g *Graph) RouteLoop(waypoints []config.Waypoint, log *zap.Logger) (*RoutedPath, error) {
	if len(waypoints) < 2 {
		return nil, errors.New("route loop: need at least two waypoints")
	}

	anchors := make([]Node, len(waypoints))
	for i, wp := range waypoints {
		n, ok := g.NearestConnected(wp.Lat, wp.Lon)
		if !ok {
			return nil, errors.New("route loop: graph has no connected nodes")
		}
		anchors[i] = n
		log.Debug("snapped waypoint",
			zap.String("label", wp.Label),
			zap.Int64("node", int64(n.ID)),
			zap.Float64("offsetMeters", Haversine(wp.Lat, wp.Lon, n.Lat, n.Lon)))
	}

	rp := &RoutedPath{}
	for i := range anchors {
		from := anchors[i]
		to := anchors[(i+1)%len(anchors)]
		path, err := g.ShortestPath(from.ID, to.ID)
		if err != nil {
			rp.FailedPairs++
			log.Warn("no route between waypoints",
				zap.String("from", waypoints[i].Label),
				zap.String("to", waypoints[(i+1)%len(anchors)].Label),
				zap.Error(err))
			continue
		}
		rp.append(path, fallbackLabel(waypoints[i].Label))
	}
	return rp, nil
}

// append stitches one pair's path onto the growing loop, dropping the
// duplicate vertex at the seam and filling empty street labels with the
// origin waypoint's label.
func (rp *RoutedPath) append(path []Step, fallback string) {
	for i, s := range path {
		if i == 0 && len(rp.Steps) > 0 && rp.Steps[len(rp.Steps)-1].Node == s.Node {
			continue
		}
		if s.Street == "" {
			s.Street = fallback
		}
		rp.Steps = append(rp.Steps, s)
	}
}

// fallbackLabel strips a trailing parenthetical from a waypoint label, so
// "High Street (north end)" attributes segments as "High Street".
func fallbackLabel(label string) string {
	if i := strings.Index(label, "("); i > 0 {
		return strings.TrimSpace(label[:i])
	}
	return strings.TrimSpace(label)
}
