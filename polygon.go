package lowpoly

import (
	"image"
	"image/color"
)

// Polygon is a mesh face: a triangle and the color it is filled with.
type Polygon struct {
	Vertices [3]Point
	Color    color.NRGBA
}

// NewPolygon derives the mesh face of a triangle by averaging the source
// image pixels it covers. The vertex order is preserved.
func NewPolygon(face [3]Point, img *image.NRGBA) Polygon {
	pixels := Rasterize(face[0], face[1], face[2])

	return Polygon{
		Vertices: face,
		Color:    AverageColor(pixels, img),
	}
}

// Centroid returns the center of mass of the polygon vertices.
func (p Polygon) Centroid() Point {
	v := p.Vertices
	return Point{
		X: (v[0].X + v[1].X + v[2].X) / 3,
		Y: (v[0].Y + v[1].Y + v[2].Y) / 3,
	}
}
