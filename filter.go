package lowpoly

import "image"

// Filter is an image operation of the point seeding pipeline.
type Filter interface {
	Apply(src *image.NRGBA) *image.NRGBA
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(src *image.NRGBA) *image.NRGBA

// Apply calls f(src).
func (f FilterFunc) Apply(src *image.NRGBA) *image.NRGBA {
	return f(src)
}

// Blur is a box blur of the given radius. It works on grayscale images.
type Blur struct {
	Radius int
}

// Apply blurs the image. A radius below 1 returns the source unchanged.
func (b Blur) Apply(src *image.NRGBA) *image.NRGBA {
	if b.Radius < 1 {
		return src
	}
	matrix := setBlurMatrix(b.Radius)
	return convolutionFilter(matrix, src, float64(len(matrix)))
}

// Chain applies a list of filters one after the other.
type Chain struct {
	Filters []Filter
}

// NewChain creates a new filter chain initialized with the given list of filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{
		Filters: filters,
	}
}

// Apply runs every filter of the chain, feeding each one with the output of
// the previous one.
func (c *Chain) Apply(src *image.NRGBA) *image.NRGBA {
	dst := src
	for _, f := range c.Filters {
		dst = f.Apply(dst)
	}
	return dst
}
