package lowpoly

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math/rand"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/xerrors"
)

// Processor holds the options of the automatic point seeding.
type Processor struct {
	BlurRadius      int
	SobelThreshold  int
	PointsThreshold int
	MaxPoints       int
	// Seed makes the point selection reproducible.
	Seed int64
}

// Decode reads an image and normalizes it to *image.NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, xerrors.Errorf("unable to decode the source image: %w", err)
	}
	return ToNRGBA(src), nil
}

// Open decodes the image file at path.
func Open(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("unable to open the source image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Points detects the edges of the image and returns the points worth
// triangulating, followed by the image corners so the mesh covers the whole
// canvas.
func (p *Processor) Points(img *image.NRGBA) []Point {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	edges := NewChain(
		FilterFunc(Grayscale),
		Blur{Radius: p.BlurRadius},
		Sobel{Threshold: float64(p.SobelThreshold)},
	).Apply(img)

	r := rand.New(rand.NewSource(p.Seed))
	points := EdgePoints(edges, p.PointsThreshold, p.MaxPoints, r)

	w, h := float32(width), float32(height)
	return append(points, Point{0, 0}, Point{w, 0}, Point{w, h}, Point{0, h})
}

// Process seeds the session with the points found on its source image and
// returns the number of vertices accepted by the triangulation.
func (p *Processor) Process(s *Session) int {
	return s.InsertAll(p.Points(s.Image()))
}
