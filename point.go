package lowpoly

import (
	"image"
	"image/color"
	"math"
)

// Point defines a vertex of the triangulation in image space.
type Point struct {
	X, Y float32
}

// Pixel is an integer pixel coordinate produced by the rasterizer.
type Pixel struct {
	X, Y uint32
}

// Add translates the point by the vector p.
func (pt Point) Add(p Point) Point {
	return Point{X: pt.X + p.X, Y: pt.Y + p.Y}
}

// Scale multiplies both coordinates by s.
func (pt Point) Scale(s float32) Point {
	return Point{X: pt.X * s, Y: pt.Y * s}
}

// Color returns the color of the pixel nearest to the point.
// Points falling outside of the image resolve to transparent black.
func (pt Point) Color(img *image.NRGBA) color.NRGBA {
	x := int(math.Round(float64(pt.X)))
	y := int(math.Round(float64(pt.Y)))

	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if x < 0 || y < 0 || x >= width || y >= height {
		return color.NRGBA{}
	}
	i := img.PixOffset(x, y)
	return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}
