package route

// CloseLoop appends a duplicate of the first point when the distance between
// the endpoints exceeds tolerance, forcing the polyline into a closed loop.
func CloseLoop(pts []Point, tolerance float64) []Point {
	if len(pts) < 2 {
		return pts
	}
	if Dist(pts[0], pts[len(pts)-1]) <= tolerance {
		return pts
	}
	return append(pts, pts[0])
}
