package lowpoly

import (
	"image"
	"image/color"
)

// AverageColor reduces the colors of the provided pixels into a single opaque color.
// Pixels outside of the image bounds are ignored. When no pixel remains the
// result defaults to opaque black.
func AverageColor(pixels []Pixel, img *image.NRGBA) color.NRGBA {
	var (
		r, g, b, n uint64

		width  = uint32(img.Bounds().Dx())
		height = uint32(img.Bounds().Dy())
	)

	for _, p := range pixels {
		if p.X >= width || p.Y >= height {
			continue
		}
		i := img.PixOffset(int(p.X), int(p.Y))
		r += uint64(img.Pix[i])
		g += uint64(img.Pix[i+1])
		b += uint64(img.Pix[i+2])
		n++
	}
	if n == 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}

// Mix blends two colors into the inverted mean of their channels.
// It is used for stroking the mesh edges so they stand out from the faces.
func Mix(c0, c1 color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: 255 - uint8((uint16(c0.R)+uint16(c1.R))/2),
		G: 255 - uint8((uint16(c0.G)+uint16(c1.G))/2),
		B: 255 - uint8((uint16(c0.B)+uint16(c1.B))/2),
		A: 255,
	}
}
