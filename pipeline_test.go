package osmtoloop

import (
	"context"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/urban-loopworks/osm-to-loop/config"
	"github.com/urban-loopworks/osm-to-loop/overpass"
)

func fxNode(id osm.NodeID, lat, lon float64, kv ...string) *osm.Node {
	n := &osm.Node{ID: id, Lat: lat, Lon: lon}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Tags = append(n.Tags, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return n
}

func fxWay(id osm.WayID, name string, nodeIDs ...osm.NodeID) *osm.Way {
	w := &osm.Way{ID: id, Tags: osm.Tags{{Key: "highway", Value: "residential"}}}
	if name != "" {
		w.Tags = append(w.Tags, osm.Tag{Key: "name", Value: name})
	}
	for _, nid := range nodeIDs {
		w.Nodes = append(w.Nodes, osm.WayNode{ID: nid})
	}
	return w
}

const (
	fxLatMin = 51.7500
	fxLatMax = 51.7600
	fxLonMin = -0.3500
	fxLonMax = -0.3400
	fxStep   = 0.0020
)

// townDataset is a rectangular one-way-per-side street loop with a short side
// road off the east side and a bus stop near the middle of each side.
func townDataset() *osm.OSM {
	data := &osm.OSM{}

	// Perimeter nodes, clockwise from the south-west corner. Corner ids:
	// 1 (SW), 6 (SE), 11 (NE), 16 (NW).
	var coords [][2]float64
	for i := 0; i < 5; i++ {
		coords = append(coords, [2]float64{fxLatMin, fxLonMin + float64(i)*fxStep})
	}
	for i := 0; i < 5; i++ {
		coords = append(coords, [2]float64{fxLatMin + float64(i)*fxStep, fxLonMax})
	}
	for i := 0; i < 5; i++ {
		coords = append(coords, [2]float64{fxLatMax, fxLonMax - float64(i)*fxStep})
	}
	for i := 0; i < 5; i++ {
		coords = append(coords, [2]float64{fxLatMax - float64(i)*fxStep, fxLonMin})
	}
	for i, c := range coords {
		data.Nodes = append(data.Nodes, fxNode(osm.NodeID(i+1), c[0], c[1]))
	}

	data.Ways = osm.Ways{
		fxWay(101, "South Parade", 1, 2, 3, 4, 5, 6),
		fxWay(102, "Harbour Road", 6, 7, 8, 9, 10, 11),
		fxWay(103, "North Avenue", 11, 12, 13, 14, 15, 16),
		fxWay(104, "Mill Lane", 16, 17, 18, 19, 20, 1),
	}

	// Side road branching east off the Harbour Road midpoint (node 8).
	data.Nodes = append(data.Nodes, fxNode(501, 51.7540, -0.3395))
	data.Ways = append(data.Ways, fxWay(105, "Dock Lane", 8, 501))

	// Bus stops just off each side, plus one far outside the match distance.
	data.Nodes = append(data.Nodes,
		fxNode(601, 51.75005, -0.3460, "highway", "bus_stop", "name", "Corn Exchange"),
		fxNode(602, 51.7540, -0.33995, "highway", "bus_stop", "name", "Harbour Office"),
		fxNode(603, 51.75995, -0.3440, "public_transport", "platform", "name", "North Gate"),
		fxNode(604, 51.7540, -0.34995, "public_transport", "stop_position", "name", "Mill"),
		fxNode(605, 51.7550, -0.3300, "highway", "bus_stop", "name", "Distant Halt"),
	)
	return data
}

func townConfig() config.AppConfig {
	cfg := config.Default()
	cfg.BBox = config.BoundingBox{MinLat: fxLatMin, MinLon: fxLonMin, MaxLat: fxLatMax, MaxLon: fxLonMax}
	cfg.Waypoints = []config.Waypoint{
		{Lat: fxLatMin, Lon: fxLonMin, Label: "Old Town (square)"},
		{Lat: fxLatMin, Lon: fxLonMax, Label: "Harbour"},
		{Lat: fxLatMax, Lon: fxLonMax, Label: "North Gate"},
		{Lat: fxLatMax, Lon: fxLonMin, Label: "Mill"},
	}
	cfg.Junctions = []config.Junction{
		{Lat: fxLatMax, Lon: fxLonMin, RadiusMeters: 20, Name: "Mill Roundabout", Arms: 3},
	}
	return cfg
}

func runTown(t *testing.T, cfg config.AppConfig, data *osm.OSM) (*Result, error) {
	t.Helper()
	p := NewPipeline(cfg, overpass.StaticSource{Data: data}, zap.NewNop())
	return p.Run(context.Background())
}

func TestRunProducesClosedResampledLoop(t *testing.T) {
	cfg := townConfig()
	res, err := runTown(t, cfg, townDataset())
	require.NoError(t, err)
	a := res.Artifact

	require.GreaterOrEqual(t, len(a.Route), cfg.Route.MinRoutePoints)
	assert.Equal(t, a.Route[0], a.Route[len(a.Route)-1], "loop must close on its start point")

	maxGap := cfg.Route.ResampleInterval + cfg.Route.GapWarnTolerance
	for i := 1; i < len(a.Route); i++ {
		dx := a.Route[i][0] - a.Route[i-1][0]
		dz := a.Route[i][1] - a.Route[i-1][1]
		assert.LessOrEqual(t, dx*dx+dz*dz, maxGap*maxGap+1e-6, "gap at %d", i)
	}

	assert.Zero(t, res.Report.RoutingErrors)
	assert.Zero(t, res.Report.GapViolations)
	assert.Equal(t, len(a.Route), res.Report.RoutePoints)
}

func TestRunScalesBoundsToTargetSpan(t *testing.T) {
	cfg := townConfig()
	res, err := runTown(t, cfg, townDataset())
	require.NoError(t, err)
	b := res.Artifact.Bounds

	// The latitude span is the larger one; it maps to the target span, plus
	// padding on both sides.
	want := cfg.Projection.TargetSpan + 2*cfg.Artifact.BoundsPadding
	assert.InDelta(t, want, b.MaxZ-b.MinZ, 1.0)
	assert.Less(t, b.MaxX-b.MinX, want)
}

func TestRunMatchesRealStopsAndDropsFarOnes(t *testing.T) {
	res, err := runTown(t, townConfig(), townDataset())
	require.NoError(t, err)
	a := res.Artifact

	require.Len(t, a.Stops, 4)
	assert.Zero(t, res.Report.SynthesizedStops)

	names := map[string]bool{}
	for _, s := range a.Stops {
		names[s.Name] = true
	}
	for _, want := range []string{"Corn Exchange", "Harbour Office", "North Gate", "Mill"} {
		assert.True(t, names[want], "missing stop %q", want)
	}
	assert.False(t, names["Distant Halt"], "far candidate must be dropped")

	for i := 1; i < len(a.Stops); i++ {
		assert.Greater(t, a.Stops[i].Index, a.Stops[i-1].Index)
	}
}

func TestRunDerivesStubsAndJunctions(t *testing.T) {
	res, err := runTown(t, townConfig(), townDataset())
	require.NoError(t, err)
	a := res.Artifact

	require.Len(t, a.Junctions, 1)
	assert.Equal(t, "Mill Roundabout", a.Junctions[0].Name)
	assert.Positive(t, a.Junctions[0].Radius)

	require.NotEmpty(t, a.SideRoads, "the Dock Lane branch must surface as a stub")
	assert.Equal(t, len(a.SideRoads), res.Report.Stubs)
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := townConfig()
	first, err := runTown(t, cfg, townDataset())
	require.NoError(t, err)
	second, err := runTown(t, cfg, townDataset())
	require.NoError(t, err)

	b1, err := first.Artifact.Marshal()
	require.NoError(t, err)
	b2, err := second.Artifact.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b1, b2, "identical inputs must emit byte-identical artifacts")
}

func TestRunUnreachableWaypointIsNonFatal(t *testing.T) {
	data := townDataset()
	data.Nodes = append(data.Nodes, fxNode(701, 51.7800, -0.3000), fxNode(702, 51.7810, -0.3000))
	data.Ways = append(data.Ways, fxWay(106, "Island Road", 701, 702))

	cfg := townConfig()
	cfg.Waypoints = append(cfg.Waypoints, config.Waypoint{Lat: 51.7800, Lon: -0.3000, Label: "Island"})

	res, err := runTown(t, cfg, data)
	require.NoError(t, err, "an unreachable waypoint degrades the loop, it does not abort the run")
	assert.Equal(t, 2, res.Report.RoutingErrors)
	assert.False(t, res.Report.Clean())
	require.NotNil(t, res.Artifact)
	// The loop still closes: the pair gap is bridged by the closing duplicate.
	a := res.Artifact
	assert.Equal(t, a.Route[0], a.Route[len(a.Route)-1])
}

func TestRunFailsWhenRouteTooSmall(t *testing.T) {
	cfg := townConfig()
	cfg.Route.MinRoutePoints = 100000
	_, err := runTown(t, cfg, townDataset())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "route too small")
}

func TestRunFailsWithoutEnoughStops(t *testing.T) {
	data := townDataset()
	// Strip the transit nodes and disable synthesis.
	kept := data.Nodes[:0]
	for _, n := range data.Nodes {
		if n.Tags.Find("highway") == "bus_stop" || n.Tags.Find("public_transport") != "" {
			continue
		}
		kept = append(kept, n)
	}
	data.Nodes = kept

	cfg := townConfig()
	cfg.Stops.SynthesisStride = 0
	_, err := runTown(t, cfg, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too few stops")
}

func TestRunSynthesizesStopsWhenNoneMatch(t *testing.T) {
	data := townDataset()
	kept := data.Nodes[:0]
	for _, n := range data.Nodes {
		if n.Tags.Find("highway") == "bus_stop" || n.Tags.Find("public_transport") != "" {
			continue
		}
		kept = append(kept, n)
	}
	data.Nodes = kept

	cfg := townConfig()
	res, err := runTown(t, cfg, data)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(res.Artifact.Stops), cfg.Stops.MinCount)
	assert.Equal(t, len(res.Artifact.Stops), res.Report.SynthesizedStops)
	assert.False(t, res.Report.Clean())
}

func TestReportCleanAndJSON(t *testing.T) {
	r := &Report{RoutePoints: 480, Stops: 4, Stubs: 7}
	assert.True(t, r.Clean())
	r.GapViolations = 1
	assert.False(t, r.Clean())

	assert.Contains(t, string(r.JSON()), "\"gapViolations\": 1")
}
