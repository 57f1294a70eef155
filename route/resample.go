package route

// endTolerance is how far the last sampled point may sit from the original
// final vertex before that vertex is appended explicitly.
const endTolerance = 1.0

// Resample walks the cumulative arc length of the polyline in fixed steps of
// interval and linearly interpolates a vertex at each step, carrying the
// street label of the nearest original vertex. Consecutive output points are
// spaced at essentially the interval; only the final segment may be shorter.
func Resample(pts []Point, interval float64) []Point {
	if len(pts) < 2 {
		return pts
	}

	cum := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		cum[i] = cum[i-1] + Dist(pts[i-1], pts[i])
	}
	total := cum[len(cum)-1]

	out := make([]Point, 0, int(total/interval)+2)
	seg := 0
	for d := 0.0; d <= total; d += interval {
		for seg < len(cum)-2 && cum[seg+1] < d {
			seg++
		}
		out = append(out, interpolate(pts[seg], pts[seg+1], cum[seg], cum[seg+1], d))
	}

	last := pts[len(pts)-1]
	if Dist(out[len(out)-1], last) > endTolerance {
		out = append(out, last)
	}
	return out
}

func interpolate(a, b Point, da, db, d float64) Point {
	t := 0.0
	if db > da {
		t = (d - da) / (db - da)
	}
	p := Point{
		X: a.X + t*(b.X-a.X),
		Z: a.Z + t*(b.Z-a.Z),
	}
	if t < 0.5 {
		p.Street = a.Street
	} else {
		p.Street = b.Street
	}
	return p
}
