package route

// RemoveBacktracks deletes interior vertices where the path doubles back on
// itself: the incoming and outgoing segment vectors point more than 90 degrees
// apart, or either adjacent segment is shorter than segmentEpsilon. Routing
// through divided carriageways and roundabouts produces such vertices; they
// are topological artifacts, not legitimate sharp turns. Scanning repeats
// until a pass removes nothing. Endpoints are never touched.
func RemoveBacktracks(pts []Point, segmentEpsilon float64) []Point {
	if len(pts) < 3 {
		return pts
	}
	out := pts
	for {
		kept := make([]Point, 0, len(out))
		kept = append(kept, out[0])
		removed := 0
		for i := 1; i < len(out)-1; i++ {
			prev := kept[len(kept)-1]
			next := out[i+1]
			if isBacktrack(prev, out[i], next, segmentEpsilon) {
				removed++
				continue
			}
			kept = append(kept, out[i])
		}
		kept = append(kept, out[len(out)-1])
		out = kept
		if removed == 0 {
			return out
		}
	}
}

func isBacktrack(prev, cur, next Point, segmentEpsilon float64) bool {
	if Dist(prev, cur) < segmentEpsilon || Dist(cur, next) < segmentEpsilon {
		return true
	}
	inX, inZ := cur.X-prev.X, cur.Z-prev.Z
	outX, outZ := next.X-cur.X, next.Z-cur.Z
	return inX*outX+inZ*outZ < 0
}

// MergeClose collapses runs of consecutive points closer than minDist into
// one, keeping the first point of each run and its street label.
func MergeClose(pts []Point, minDist float64) []Point {
	if len(pts) == 0 {
		return pts
	}
	out := make([]Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if Dist(out[len(out)-1], p) < minDist {
			continue
		}
		out = append(out, p)
	}
	return out
}
