package artifact

import (
	"fmt"
	"math"
	"strings"
)

// SVG renders a debug preview of the artifact: the loop polyline, stop
// markers, junction circles and stub segments, in artifact coordinates.
// Intended for eyeballing the output, not for the rendering layer.
func (a *Artifact) SVG() []byte {
	var sb strings.Builder
	w := a.Bounds.MaxX - a.Bounds.MinX
	h := a.Bounds.MaxZ - a.Bounds.MinZ
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\">\n",
		a.Bounds.MinX, a.Bounds.MinZ, w, h)

	if len(a.Route) > 1 {
		sb.WriteString("<polyline fill=\"none\" stroke=\"black\" stroke-width=\"2\" points=\"")
		for i, p := range a.Route {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%g,%g", p[0], p[1])
		}
		sb.WriteString("\" />\n")
	}

	for _, s := range a.SideRoads {
		x2 := s.X + math.Cos(s.Angle)*s.Length
		z2 := s.Z + math.Sin(s.Angle)*s.Length
		fmt.Fprintf(&sb, "<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"gray\" stroke-width=\"1\" />\n",
			s.X, s.Z, x2, z2)
	}

	for _, j := range a.Junctions {
		fmt.Fprintf(&sb, "<circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"none\" stroke=\"blue\" data-name=\"%s\" />\n",
			j.X, j.Z, j.Radius, j.Name)
	}

	for _, s := range a.Stops {
		if s.Index < 0 || s.Index >= len(a.Route) {
			continue
		}
		p := a.Route[s.Index]
		fmt.Fprintf(&sb, "<circle cx=\"%g\" cy=\"%g\" r=\"4\" fill=\"red\" data-name=\"%s\" />\n",
			p[0], p[1], s.Name)
	}

	sb.WriteString("</svg>\n")
	return []byte(sb.String())
}
