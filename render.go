package lowpoly

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Renderer draws the mesh into raster images.
type Renderer struct {
	// Wireframe selects how the faces of RenderMesh are drawn.
	Wireframe int
	// LineWidth is the stroke width of the edges, 1 when unset.
	LineWidth float64
	// Noise applies a grain filter of the given amount on RenderMesh outputs.
	Noise int
}

// Draw paints the session view into dst: the source image under the view
// transform, then the faces and edges overlays enabled on the session.
func (r *Renderer) Draw(dst *image.RGBA, s *Session) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(color.White)
	dc.Clear()

	v := s.View
	dc.Push()
	dc.Scale(float64(v.Scale), float64(v.Scale))
	dc.Translate(float64(v.X), float64(v.Y))
	dc.DrawImage(s.Image(), 0, 0)
	dc.Pop()

	if s.ShowFaces {
		for _, poly := range s.Polygons() {
			var face [3]Point
			for i, vert := range poly.Vertices {
				face[i] = s.ImageToScreen(vert)
			}
			trace(dc, face)
			dc.SetColor(poly.Color)
			dc.Fill()
		}
	}

	if s.ShowEdges {
		lw := r.LineWidth
		if lw <= 0 {
			lw = 1
		}
		dc.SetLineWidth(lw)
		for _, e := range s.Edges() {
			from, to := s.ImageToScreen(e[0]), s.ImageToScreen(e[1])
			if !s.Visible(from) && !s.Visible(to) {
				continue
			}
			dc.SetColor(Mix(e[0].Color(s.Image()), e[1].Color(s.Image())))
			dc.DrawLine(float64(from.X), float64(from.Y), float64(to.X), float64(to.Y))
			dc.Stroke()
		}
	}
}

// RenderMesh rasterizes the polygons on a white canvas of the given size.
func (r *Renderer) RenderMesh(polygons []Polygon, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.SetRGBA(1, 1, 1, 1)
	dc.Fill()

	for _, poly := range polygons {
		c := poly.Color

		dc.Push()
		trace(dc, poly.Vertices)

		switch r.Wireframe {
		case WithoutWireframe:
			dc.SetFillStyle(gg.NewSolidPattern(c))
			dc.Fill()
		case WithWireframe:
			dc.SetFillStyle(gg.NewSolidPattern(c))
			dc.SetStrokeStyle(gg.NewSolidPattern(color.NRGBA{A: 20}))
			dc.SetLineWidth(r.LineWidth)
			dc.FillPreserve()
			dc.Stroke()
		case WireframeOnly:
			dc.SetStrokeStyle(gg.NewSolidPattern(c))
			dc.SetLineWidth(r.LineWidth)
			dc.Stroke()
		}
		dc.Pop()
	}

	img := dc.Image()
	if r.Noise > 0 {
		return Noise(r.Noise, img, width, height)
	}
	return img
}

// trace adds the closed triangle outline to the current path.
func trace(dc *gg.Context, v [3]Point) {
	dc.MoveTo(float64(v[0].X), float64(v[0].Y))
	dc.LineTo(float64(v[1].X), float64(v[1].Y))
	dc.LineTo(float64(v[2].X), float64(v[2].Y))
	dc.ClosePath()
}
