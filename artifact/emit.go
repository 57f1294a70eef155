package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/urban-loopworks/osm-to-loop/route"
)

// Build assembles the artifact from the pipeline outputs. The bounds are the
// route's bounding box expanded by padding on every side.
func Build(pts []route.Point, stops []route.Stop, junctions []route.Junction, stubs []route.Stub, padding float64) *Artifact {
	a := &Artifact{
		Route:     make([][2]float64, len(pts)),
		Stops:     make([]StopEntry, len(stops)),
		Junctions: make([]JunctionEntry, len(junctions)),
		SideRoads: make([]SideRoadEntry, len(stubs)),
	}

	mp := make(orb.MultiPoint, len(pts))
	for i, p := range pts {
		a.Route[i] = [2]float64{p.X, p.Z}
		mp[i] = p.Planar()
	}
	if len(mp) > 0 {
		b := mp.Bound()
		a.Bounds = Bounds{
			MinX: b.Min[0] - padding,
			MaxX: b.Max[0] + padding,
			MinZ: b.Min[1] - padding,
			MaxZ: b.Max[1] + padding,
		}
	}

	for i, s := range stops {
		a.Stops[i] = StopEntry{Index: s.Index, Name: s.Name}
	}
	for i, j := range junctions {
		a.Junctions[i] = JunctionEntry{X: j.X, Z: j.Z, Radius: j.Radius, Name: j.Name, Arms: j.Arms}
	}
	for i, s := range stubs {
		a.SideRoads[i] = SideRoadEntry{X: s.X, Z: s.Z, Angle: s.Angle, Length: s.Length}
	}
	return a
}

// Marshal renders the artifact as indented JSON. Field order is fixed by the
// struct definitions, so the output is deterministic.
func (a *Artifact) Marshal() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// WriteFile writes the artifact atomically: the payload lands in a temp file
// in the target directory and is renamed into place only once fully written.
func (a *Artifact) WriteFile(path string) error {
	buf, err := a.Marshal()
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".loop-*.json")
	if err != nil {
		return fmt.Errorf("artifact temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("artifact write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artifact close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("artifact rename: %w", err)
	}
	return nil
}
