package lowpoly

import "math"

// Rasterize returns the pixels enclosed by the triangle abc.
//
// Every integer point of the triangle's bounding box is checked against the
// triangle outline with a crossing number test. The coordinates are not
// clamped to any image: callers are responsible for discarding the pixels
// falling outside of the canvas.
func Rasterize(a, b, c Point) []Pixel {
	// Collinear and coincident vertices enclose nothing.
	if area2(a, b, c) == 0 {
		return nil
	}
	vertices := []Point{a, b, c}

	minX := int(math.Floor(float64(Min(a.X, b.X, c.X))))
	minY := int(math.Floor(float64(Min(a.Y, b.Y, c.Y))))
	maxX := int(math.Ceil(float64(Max(a.X, b.X, c.X))))
	maxY := int(math.Ceil(float64(Max(a.Y, b.Y, c.Y))))

	var pixels []Pixel
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			if Contains(vertices, float32(x), float32(y)) {
				pixels = append(pixels, Pixel{X: uint32(x), Y: uint32(y)})
			}
		}
	}
	return pixels
}

// Contains reports whether the point (x, y) lies inside the closed polygon
// described by vertices. The last vertex connects back to the first one.
func Contains(vertices []Point, x, y float32) bool {
	if len(vertices) < 3 {
		return false
	}
	inside := false

	j := len(vertices) - 1
	for i := 0; i < len(vertices); i++ {
		pi, pj := vertices[i], vertices[j]

		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// area2 returns twice the signed area of the triangle abc.
func area2(a, b, c Point) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}
