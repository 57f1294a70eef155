// Package osmtoloop orchestrates the batch pipeline: fetch the street
// network, build the routing graph, solve the waypoint loop, simplify and
// resample it, bind stops and side roads, and emit the planar artifact.
package osmtoloop

import (
	"context"
	"fmt"
	"strings"

	"github.com/paulmach/osm"
	"go.uber.org/zap"

	"github.com/urban-loopworks/osm-to-loop/artifact"
	"github.com/urban-loopworks/osm-to-loop/config"
	"github.com/urban-loopworks/osm-to-loop/graph"
	"github.com/urban-loopworks/osm-to-loop/overpass"
	"github.com/urban-loopworks/osm-to-loop/route"
)

// Pipeline runs the full batch transform: fetch, build, solve, simplify,
// validate, emit. Stages are strictly sequential; each consumes the complete
// output of the previous one.
type Pipeline struct {
	cfg config.AppConfig
	src overpass.Source
	log *zap.Logger
}

// NewPipeline wires a pipeline from its injected dependencies.
func NewPipeline(cfg config.AppConfig, src overpass.Source, log *zap.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, src: src, log: log}
}

// Result carries the emitted artifact plus the debug views of the run.
type Result struct {
	Artifact *artifact.Artifact
	Report   *Report

	// Geographic inputs retained for the debug GeoJSON dump.
	GeoVerts   []route.GeoVertex
	Candidates []route.Candidate
}

// Run executes the pipeline. Fatal conditions (no route, too few points, too
// few stops) return an error and no artifact; non-fatal conditions are
// accumulated in the report.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	data, err := p.src.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	g := graph.Build(data, p.cfg.RoadClasses, p.log)

	routed, err := g.RouteLoop(p.cfg.Waypoints, p.log)
	if err != nil {
		return nil, fmt.Errorf("route loop: %w", err)
	}
	report := &Report{RoutingErrors: routed.FailedPairs}

	verts := geoVertices(g, routed)
	if len(verts) == 0 {
		return nil, fmt.Errorf("route loop: no waypoint pair produced a path")
	}

	t := route.BuildTransform(verts, p.cfg.Projection.TargetSpan)
	pts := route.ProjectVertices(verts, t)
	p.log.Info("projected route", zap.Int("points", len(pts)), zap.Float64("scale", t.Scale))

	pts = route.RemoveBacktracks(pts, p.cfg.Route.CleanupSegmentEpsilon)
	pts = route.MergeClose(pts, p.cfg.Route.CleanupMergeDistance)
	p.log.Info("cleaned route", zap.Int("points", len(pts)))

	pts = route.Resample(pts, p.cfg.Route.ResampleInterval)
	pts = route.CloseLoop(pts, p.cfg.Route.LoopCloseTolerance)
	p.log.Info("resampled route", zap.Int("points", len(pts)))

	report.GapViolations = countGaps(pts, p.cfg.Route.ResampleInterval+p.cfg.Route.GapWarnTolerance)
	if report.GapViolations > 0 {
		p.log.Warn("route has oversized gaps", zap.Int("count", report.GapViolations))
	}
	if len(pts) < p.cfg.Route.MinRoutePoints {
		return nil, fmt.Errorf("route too small: %d points, need %d", len(pts), p.cfg.Route.MinRoutePoints)
	}

	cands := transitStops(data)
	stops, synthesized := route.MatchStops(pts, cands, t, route.MatchParams{
		MaxDistance: p.cfg.Stops.MaxMatchDistance,
		MinSpacing:  p.cfg.Stops.MinSpacing,
		IndexWindow: p.cfg.Stops.DedupIndexWindow,
		MinCount:    p.cfg.Stops.MinCount,
		SynthStride: p.cfg.Stops.SynthesisStride,
	})
	if len(stops) < p.cfg.Stops.MinCount {
		return nil, fmt.Errorf("too few stops: %d after synthesis, need %d", len(stops), p.cfg.Stops.MinCount)
	}
	report.Stops = len(stops)
	report.SynthesizedStops = synthesized

	junctions := route.ProjectJunctions(p.cfg.Junctions, t)
	stubs := route.DetectStubs(g, routed.NodeIDs(), t, junctions, route.StubParams{
		MinLength:  p.cfg.Stubs.MinLength,
		MaxLength:  p.cfg.Stubs.MaxLength,
		MinSpacing: p.cfg.Stubs.MinSpacing,
		MaxCount:   p.cfg.Stubs.MaxCount,
	})
	report.Stubs = len(stubs)
	report.RoutePoints = len(pts)

	art := artifact.Build(pts, stops, junctions, stubs, p.cfg.Artifact.BoundsPadding)
	report.Log(p.log)
	return &Result{
		Artifact:   art,
		Report:     report,
		GeoVerts:   verts,
		Candidates: cands,
	}, nil
}

// geoVertices resolves the routed steps back to coordinates.
func geoVertices(g *graph.Graph, rp *graph.RoutedPath) []route.GeoVertex {
	verts := make([]route.GeoVertex, len(rp.Steps))
	for i, s := range rp.Steps {
		n := g.Nodes[s.Node]
		verts[i] = route.GeoVertex{Lat: n.Lat, Lon: n.Lon, Street: s.Street}
	}
	return verts
}

func countGaps(pts []route.Point, maxGap float64) int {
	n := 0
	for i := 1; i < len(pts); i++ {
		if route.Dist(pts[i-1], pts[i]) > maxGap {
			n++
		}
	}
	return n
}

// transitStops extracts the stop candidates from the raw dataset: nodes
// tagged as bus stops or public-transport platforms.
func transitStops(data *osm.OSM) []route.Candidate {
	var out []route.Candidate
	for _, n := range data.Nodes {
		pt := n.Tags.Find("public_transport")
		if n.Tags.Find("highway") != "bus_stop" && pt != "platform" && pt != "stop_position" {
			continue
		}
		out = append(out, route.Candidate{
			Lat:  n.Lat,
			Lon:  n.Lon,
			Name: strings.TrimSpace(n.Tags.Find("name")),
		})
	}
	return out
}
