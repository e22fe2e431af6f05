package lowpoly

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/exp/slices"
	"golang.org/x/xerrors"
)

// SVG exports the mesh as a vector document, one filled polygon per face.
type SVG struct {
	Width       int
	Height      int
	Title       string
	Description string
	// Sorted orders the faces by their centroid instead of the mesh order.
	Sorted bool
}

// printer writes formatted output and keeps the first error encountered.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, a ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, a...)
}

// Encode writes the SVG document describing the polygons into w.
func (s *SVG) Encode(w io.Writer, polygons []Polygon) error {
	if s.Sorted {
		polygons = slices.Clone(polygons)
		SortByCentroid(polygons)
	}
	bw := bufio.NewWriter(w)
	p := &printer{w: bw}

	p.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	p.printf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1"`)
	if s.Width > 0 && s.Height > 0 {
		p.printf(` width="%d" height="%d" viewBox="0 0 %d %d"`, s.Width, s.Height, s.Width, s.Height)
	}
	p.printf(">\n")

	if s.Title != "" {
		p.printf("\t<title>%s</title>\n", html.EscapeString(s.Title))
	}
	if s.Description != "" {
		p.printf("\t<desc>%s</desc>\n", html.EscapeString(s.Description))
	}
	for _, poly := range polygons {
		c := poly.Color
		p.printf("\t<polygon points=\"%s\" fill=\"rgb(%d, %d, %d)\"/>\n",
			outline(poly), c.R, c.G, c.B)
	}
	p.printf("</svg>\n")

	if p.err != nil {
		return p.err
	}
	return bw.Flush()
}

// Save writes the SVG document into the file at path, replacing its content.
func (s *SVG) Save(path string, polygons []Polygon) error {
	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("unable to create the svg file: %w", err)
	}
	if err := s.Encode(f, polygons); err != nil {
		f.Close()
		return xerrors.Errorf("unable to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("unable to close %s: %w", path, err)
	}
	return nil
}

// outline formats the polygon vertices as an SVG point list.
func outline(poly Polygon) string {
	var sb strings.Builder

	for _, v := range poly.Vertices {
		sb.WriteString(formatFloat(v.X))
		sb.WriteByte(',')
		sb.WriteString(formatFloat(v.Y))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}

// LoadVertices reads back the polygon vertices of an SVG document, in document
// order and without duplicates. Inserting them into an empty triangulation
// restores the mesh the document was exported from.
func LoadVertices(r io.Reader) ([]Point, error) {
	root, err := svgparser.Parse(r, false)
	if err != nil {
		return nil, xerrors.Errorf("unable to parse the svg document: %w", err)
	}

	var (
		points []Point
		seen   = make(map[Point]struct{})
	)
	for _, el := range root.FindAll("polygon") {
		pts, err := parsePoints(el.Attributes["points"])
		if err != nil {
			return nil, err
		}
		for _, p := range pts {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			points = append(points, p)
		}
	}
	return points, nil
}

// parsePoints decodes a whitespace and comma separated coordinate list.
func parsePoints(list string) ([]Point, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, xerrors.Errorf("odd number of coordinates in %q", list)
	}

	points := make([]Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, xerrors.Errorf("invalid x coordinate: %w", err)
		}
		y, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return nil, xerrors.Errorf("invalid y coordinate: %w", err)
		}
		points = append(points, Point{X: float32(x), Y: float32(y)})
	}
	return points, nil
}
