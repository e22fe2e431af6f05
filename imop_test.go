package lowpoly

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	gray.SetGray(2, 1, color.Gray{Y: 77})

	dst := ToNRGBA(gray)
	assert.Equal(t, color.NRGBA{77, 77, 77, 255}, dst.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, dst.NRGBAAt(0, 0))

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, ToNRGBA(rgba).NRGBAAt(1, 1))

	src := gradientImage(10, 10)
	assert.Same(t, src, ToNRGBA(src))

	sub := src.SubImage(image.Rect(4, 3, 9, 8)).(*image.NRGBA)
	moved := ToNRGBA(sub)
	assert.Equal(t, image.Rect(0, 0, 5, 5), moved.Bounds())
	assert.Equal(t, src.NRGBAAt(4, 3), moved.NRGBAAt(0, 0))
	assert.Equal(t, src.NRGBAAt(8, 7), moved.NRGBAAt(4, 4))
}

func TestGrayscale(t *testing.T) {
	img := uniformImage(2, 2, color.NRGBA{255, 0, 0, 255})
	gray := Grayscale(img)

	c := gray.NRGBAAt(1, 1)
	assert.Equal(t, uint8(76), c.R)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.R, c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestBlur(t *testing.T) {
	img := uniformImage(5, 5, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 2, color.NRGBA{90, 90, 90, 255})

	assert.Same(t, img, Blur{}.Apply(img))

	blurred := Blur{Radius: 1}.Apply(img)
	assert.Equal(t, uint8(10), blurred.NRGBAAt(2, 2).R)
	assert.Equal(t, uint8(10), blurred.NRGBAAt(1, 1).R)
	assert.Equal(t, uint8(0), blurred.NRGBAAt(0, 0).R)
}

func TestSobel(t *testing.T) {
	img := uniformImage(10, 10, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.SetNRGBA(x, y, color.NRGBA{200, 200, 200, 255})
		}
	}
	edges := Sobel{Threshold: 10}.Apply(img)

	assert.Equal(t, uint8(255), edges.NRGBAAt(5, 5).R)
	assert.Equal(t, uint8(255), edges.NRGBAAt(4, 5).R)
	assert.Equal(t, uint8(0), edges.NRGBAAt(1, 5).R)
	assert.Equal(t, uint8(0), edges.NRGBAAt(8, 5).R)
}

func TestChain(t *testing.T) {
	var calls []string
	step := func(name string) Filter {
		return FilterFunc(func(src *image.NRGBA) *image.NRGBA {
			calls = append(calls, name)
			return src
		})
	}
	img := uniformImage(1, 1, color.NRGBA{})

	assert.Same(t, img, NewChain(step("a"), step("b"), step("c")).Apply(img))
	assert.Equal(t, []string{"a", "b", "c"}, calls)
}

func TestEdgePoints(t *testing.T) {
	img := uniformImage(40, 40, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < 40; y++ {
		img.SetNRGBA(20, y, color.NRGBA{255, 255, 255, 255})
	}

	all := EdgePoints(img, 20, 1000, rand.New(rand.NewSource(1)))
	// Three columns are close enough to the line, 87.5% of them are kept.
	assert.Len(t, all, int(120*pointRate))
	for _, p := range all {
		assert.InDelta(t, 20, p.X, 1)
	}

	capped := EdgePoints(img, 20, 10, rand.New(rand.NewSource(1)))
	assert.Len(t, capped, 10)

	seen := make(map[Point]bool)
	for _, p := range capped {
		assert.False(t, seen[p], "point %v picked twice", p)
		seen[p] = true
	}
	assert.Equal(t, capped, EdgePoints(img, 20, 10, rand.New(rand.NewSource(1))))
}

func TestNoise(t *testing.T) {
	img := uniformImage(8, 8, color.NRGBA{100, 100, 100, 255})

	noisy := Noise(20, img, 8, 8)
	require.Equal(t, img.Bounds(), noisy.Bounds())

	var changed bool
	for i := 0; i < len(noisy.Pix); i += 4 {
		if noisy.Pix[i] != 100 {
			changed = true
		}
		assert.Equal(t, uint8(255), noisy.Pix[i+3])
	}
	assert.True(t, changed)
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 1, Min(3, 1, 2))
	assert.Equal(t, 3, Max(3, 1, 2))
	assert.Equal(t, float32(-1.5), Min[float32](0, -1.5))
}
