package lowpoly

import (
	"image"
	"math/rand"
)

// pointRate defines the share of edge points kept for the triangulation.
// Changing this value will modify the triangles sizes.
const pointRate = 0.875

// EdgePoints retrieves the triangle points after the Sobel threshold has been applied.
// A pixel is a candidate when the mean of its 3x3 neighborhood exceeds threshold;
// at most maxPoints candidates are picked at random, without repetition.
func EdgePoints(img *image.NRGBA, threshold, maxPoints int, r *rand.Rand) []Point {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	var (
		sum, total int
		points     []Point
	)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum, total = 0, 0

			for row := -1; row <= 1; row++ {
				sy := y + row
				if sy < 0 || sy >= height {
					continue
				}
				for col := -1; col <= 1; col++ {
					sx := x + col
					if sx >= 0 && sx < width {
						sum += int(img.Pix[img.PixOffset(sx, sy)])
						total++
					}
				}
			}
			if total > 0 {
				sum /= total
			}
			if sum > threshold {
				points = append(points, Point{X: float32(x), Y: float32(y)})
			}
		}
	}

	limit := int(float64(len(points)) * pointRate)
	if limit > maxPoints {
		limit = maxPoints
	}

	dpoints := make([]Point, 0, limit)
	for tlen := len(points); len(dpoints) < limit && tlen > 0; tlen-- {
		j := r.Intn(tlen)
		dpoints = append(dpoints, points[j])
		// Move the picked point out of the candidates.
		points[j] = points[tlen-1]
	}
	return dpoints
}
