package lowpoly

import (
	"image"

	"golang.org/x/exp/slices"
)

// Mesh caches the colored faces of a triangulation.
// The cache is always rebuilt as a whole, so it never holds faces of an
// older triangulation state.
type Mesh struct {
	polygons []Polygon
}

// Rebuild replaces the cached faces with the faces of t colored from img.
// The faces keep the triangulation enumeration order.
func (m *Mesh) Rebuild(t Triangulation, img *image.NRGBA) {
	faces := t.Faces()
	polygons := make([]Polygon, 0, len(faces))

	for _, face := range faces {
		polygons = append(polygons, NewPolygon(face, img))
	}
	m.polygons = polygons
}

// Polygons returns a snapshot of the cached faces.
func (m *Mesh) Polygons() []Polygon {
	return slices.Clone(m.polygons)
}

// Len returns the number of cached faces.
func (m *Mesh) Len() int {
	return len(m.polygons)
}

// SortByCentroid orders the polygons by their centroid, top to bottom then
// left to right. Triangulations don't guarantee a stable face order, use it
// when the output has to be reproducible.
func SortByCentroid(polygons []Polygon) {
	slices.SortStableFunc(polygons, func(a, b Polygon) int {
		ca, cb := a.Centroid(), b.Centroid()
		switch {
		case ca.Y < cb.Y:
			return -1
		case ca.Y > cb.Y:
			return 1
		case ca.X < cb.X:
			return -1
		case ca.X > cb.X:
			return 1
		}
		return 0
	})
}
