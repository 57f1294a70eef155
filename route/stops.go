package route

import (
	"fmt"
	"sort"
)

// Candidate is an external point of interest (a transit stop or platform)
// considered for binding to the polyline.
type Candidate struct {
	Lat  float64
	Lon  float64
	Name string
}

// Stop is a passenger stop bound to a polyline index.
type Stop struct {
	Index int
	Name  string
}

// MatchParams are the stop matching constraints, in scaled planar units.
type MatchParams struct {
	MaxDistance float64 // candidates farther than this from every route point are dropped
	MinSpacing  float64 // minimum planar distance between consecutive accepted stops
	IndexWindow int     // candidates within this many indices of each other collapse to one
	MinCount    int     // below this, stops are synthesized
	SynthStride int     // polyline index stride for synthesized stops
}

type matched struct {
	index int
	dist  float64
	name  string
	// synthesized stops lose ties against genuine matches
	synth bool
}

// MatchStops binds candidates to polyline indices under the distance, dedup
// and spacing constraints, synthesizing stops from the polyline itself when
// too few genuine matches survive. The returned indices are strictly
// increasing and display names are unique. synthesized reports how many of
// the returned stops were invented.
func MatchStops(pts []Point, cands []Candidate, t Transform, p MatchParams) (stops []Stop, synthesized int) {
	if len(pts) == 0 {
		return nil, 0
	}

	ms := make([]matched, 0, len(cands))
	for _, c := range cands {
		x, z := t.Project(c.Lat, c.Lon)
		idx, d := nearestIndex(pts, Point{X: x, Z: z})
		if d > p.MaxDistance {
			continue
		}
		ms = append(ms, matched{index: idx, dist: d, name: c.Name})
	}

	ms = dedupWindow(sortMatches(ms), p.IndexWindow)
	accepted := spacingFilter(pts, ms, p.MinSpacing)

	if len(accepted) < p.MinCount && p.SynthStride > 0 {
		merged := append(accepted, synthesize(pts, p.SynthStride)...)
		merged = dedupWindow(sortMatches(merged), p.IndexWindow)
		accepted = spacingFilter(pts, merged, p.MinSpacing)
	}

	stops = make([]Stop, len(accepted))
	for i, m := range accepted {
		name := m.name
		if name == "" {
			name = "Stop"
		}
		stops[i] = Stop{Index: m.index, Name: name}
		if m.synth {
			synthesized++
		}
	}
	dedupNames(stops)
	return stops, synthesized
}

// nearestIndex is a linear scan; the resampled polyline is small.
func nearestIndex(pts []Point, q Point) (int, float64) {
	best := 0
	bestDist := Dist(pts[0], q)
	for i := 1; i < len(pts); i++ {
		if d := Dist(pts[i], q); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

func sortMatches(ms []matched) []matched {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].index != ms[j].index {
			return ms[i].index < ms[j].index
		}
		if ms[i].dist != ms[j].dist {
			return ms[i].dist < ms[j].dist
		}
		return ms[i].name < ms[j].name
	})
	return ms
}

// dedupWindow collapses matches whose indices fall within window of each
// other, preferring a genuine match over a synthesized one, then a non-empty
// name, then the closer match.
func dedupWindow(ms []matched, window int) []matched {
	out := make([]matched, 0, len(ms))
	for _, m := range ms {
		if len(out) == 0 || m.index-out[len(out)-1].index >= window {
			out = append(out, m)
			continue
		}
		out[len(out)-1] = preferred(out[len(out)-1], m)
	}
	return out
}

func preferred(a, b matched) matched {
	if a.synth != b.synth {
		if b.synth {
			return a
		}
		return b
	}
	if (a.name != "") != (b.name != "") {
		if a.name != "" {
			return a
		}
		return b
	}
	if b.dist < a.dist {
		return b
	}
	return a
}

// spacingFilter scans in index order and drops any match closer than
// minSpacing to the previously accepted one.
func spacingFilter(pts []Point, ms []matched, minSpacing float64) []matched {
	out := make([]matched, 0, len(ms))
	for _, m := range ms {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if m.index <= prev.index || Dist(pts[prev.index], pts[m.index]) < minSpacing {
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// synthesize slices the polyline at a fixed stride, naming each stop after
// the street of the sliced vertex.
func synthesize(pts []Point, stride int) []matched {
	var out []matched
	for i := stride; i < len(pts)-1; i += stride {
		name := pts[i].Street
		if name != "" {
			name += " Stop"
		}
		out = append(out, matched{index: i, name: name, synth: true})
	}
	return out
}

// dedupNames appends an ordinal to repeated display names in place.
func dedupNames(stops []Stop) {
	seen := map[string]int{}
	for i := range stops {
		seen[stops[i].Name]++
		if n := seen[stops[i].Name]; n > 1 {
			stops[i].Name = fmt.Sprintf("%s %d", stops[i].Name, n)
		}
	}
}
