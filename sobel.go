package lowpoly

import (
	"image"
	"math"
)

type kernel [3][3]int32

var (
	kernelX = kernel{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	kernelY = kernel{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// Sobel detects the edges of a grayscale image. Gradient magnitudes not
// exceeding Threshold are discarded.
type Sobel struct {
	Threshold float64
}

// Apply returns a grayscale image of the gradient magnitudes.
func (s Sobel) Apply(src *image.NRGBA) *image.NRGBA {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewNRGBA(src.Bounds())

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumX, sumY int32

			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					sx := clamp(x+kx-1, width-1)
					sy := clamp(y+ky-1, height-1)
					// The image is grayscale, the red channel is enough.
					r := int32(src.Pix[src.PixOffset(sx, sy)])

					sumX += r * kernelX[ky][kx]
					sumY += r * kernelY[ky][kx]
				}
			}

			var v uint8
			magnitude := math.Sqrt(float64(sumX*sumX) + float64(sumY*sumY))
			if magnitude > s.Threshold {
				v = uint8(Min(magnitude, 255))
			}
			i := dst.PixOffset(x, y)
			dst.Pix[i] = v
			dst.Pix[i+1] = v
			dst.Pix[i+2] = v
			dst.Pix[i+3] = 0xff
		}
	}
	return dst
}

// clamp restricts v to the [0, max] range.
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
