// Package artifact serializes the finished loop into the static payload the
// rendering layer consumes: route polyline, stops, padded bounds, junctions
// and side roads. The write is atomic (temp file plus rename) so a fatal
// pipeline error never leaves a partial artifact behind. The package also
// provides SVG and GeoJSON debug renderings of the same data.
package artifact
