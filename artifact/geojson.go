package artifact

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/urban-loopworks/osm-to-loop/route"
)

// GeoJSON renders the routed geographic path and the matched stop candidates
// as a FeatureCollection, for inspection in any map viewer. This is debug
// output; the rendering layer consumes the planar artifact only.
func GeoJSON(verts []route.GeoVertex, stops []route.Candidate) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	ls := make(orb.LineString, len(verts))
	for i, v := range verts {
		ls[i] = orb.Point{v.Lon, v.Lat}
	}
	line := geojson.NewFeature(ls)
	line.Properties["kind"] = "route"
	fc.Append(line)

	for _, s := range stops {
		f := geojson.NewFeature(orb.Point{s.Lon, s.Lat})
		f.Properties["kind"] = "stop"
		f.Properties["name"] = s.Name
		fc.Append(f)
	}

	buf, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return buf, nil
}
