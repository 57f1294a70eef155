package artifact

// Artifact is the payload consumed by the rendering/simulation layer. It is
// opaque, read-only data to its consumer; field order is fixed so identical
// runs produce byte-identical files.
type Artifact struct {
	Route     [][2]float64    `json:"route"`
	Stops     []StopEntry     `json:"stops"`
	Bounds    Bounds          `json:"bounds"`
	Junctions []JunctionEntry `json:"junctions"`
	SideRoads []SideRoadEntry `json:"sideRoads"`
}

// StopEntry binds a display name to a route polyline index.
type StopEntry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Bounds is the route bounding box expanded by the configured padding.
type Bounds struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinZ float64 `json:"minZ"`
	MaxZ float64 `json:"maxZ"`
}

// JunctionEntry is a curated roundabout zone.
type JunctionEntry struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
	Name   string  `json:"name"`
	Arms   int     `json:"arms"`
}

// SideRoadEntry is a decorative stub leaving the route.
type SideRoadEntry struct {
	X      float64 `json:"x"`
	Z      float64 `json:"z"`
	Angle  float64 `json:"angle"`
	Length float64 `json:"length"`
}
