package overpass

import (
	"fmt"
	"strings"
	"time"

	"github.com/urban-loopworks/osm-to-loop/config"
)

// BuildQuery renders the Overpass QL statement for one bounding box: every
// way carrying a highway tag from the road-class allow-list, plus every node
// tagged as a transit stop or platform. The trailing recursion pulls in the
// member nodes of the selected ways. timeout becomes the server-side QL
// timeout, so the query gives up no later than the HTTP client does.
func BuildQuery(b config.BoundingBox, roadClasses []string, timeout time.Duration) string {
	bbox := fmt.Sprintf("%g,%g,%g,%g", b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	classes := strings.Join(roadClasses, "|")
	sec := int(timeout / time.Second)
	if sec < 1 {
		sec = 1
	}

	var q strings.Builder
	fmt.Fprintf(&q, "[out:json][timeout:%d];\n(\n", sec)
	fmt.Fprintf(&q, "  way[\"highway\"~\"^(%s)$\"](%s);\n", classes, bbox)
	fmt.Fprintf(&q, "  node[\"highway\"=\"bus_stop\"](%s);\n", bbox)
	fmt.Fprintf(&q, "  node[\"public_transport\"~\"^(platform|stop_position)$\"](%s);\n", bbox)
	q.WriteString(");\n(._;>;);\nout body;\n")
	return q.String()
}
