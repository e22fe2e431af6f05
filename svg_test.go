package lowpoly

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestSVG_EncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := &SVG{Width: 10, Height: 20}
	require.NoError(t, s.Encode(&buf, nil))

	root, err := svgparser.Parse(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Name)
	assert.Equal(t, "0 0 10 20", root.Attributes["viewBox"])
	assert.Empty(t, root.FindAll("polygon"))
}

func TestSVG_EncodePolygons(t *testing.T) {
	polys := []Polygon{
		{Vertices: [3]Point{{0, 0}, {4, 0}, {0, 4}}, Color: color.NRGBA{10, 20, 30, 255}},
		{Vertices: [3]Point{{4, 0}, {4, 4.5}, {0, 4}}, Color: color.NRGBA{1, 2, 3, 0}},
	}

	var buf bytes.Buffer
	s := &SVG{Title: "mesh & co", Description: "two faces"}
	require.NoError(t, s.Encode(&buf, polys))
	assert.Contains(t, buf.String(), "<title>mesh &amp; co</title>")

	root, err := svgparser.Parse(&buf, false)
	require.NoError(t, err)

	elements := root.FindAll("polygon")
	require.Len(t, elements, 2)
	assert.Equal(t, "0,0 4,0 0,4 ", elements[0].Attributes["points"])
	assert.Equal(t, "rgb(10, 20, 30)", elements[0].Attributes["fill"])
	assert.Equal(t, "4,0 4,4.5 0,4 ", elements[1].Attributes["points"])
	assert.Equal(t, "rgb(1, 2, 3)", elements[1].Attributes["fill"])
}

func TestSVG_Sorted(t *testing.T) {
	polys := []Polygon{
		{Vertices: [3]Point{{10, 10}, {12, 10}, {10, 12}}},
		{Vertices: [3]Point{{0, 0}, {2, 0}, {0, 2}}},
	}

	var buf bytes.Buffer
	s := &SVG{Sorted: true}
	require.NoError(t, s.Encode(&buf, polys))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"0,0 `), strings.Index(out, `"10,10 `))
	assert.Equal(t, Point{10, 10}, polys[0].Vertices[0], "the input is left untouched")
}

func TestSVG_SaveErrors(t *testing.T) {
	s := &SVG{}
	path := filepath.Join(t.TempDir(), "missing", "out.svg")

	err := s.Save(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSVG_SaveAndLoad(t *testing.T) {
	img := gradientImage(200, 200)
	d := randomTriangulation(30, 200, 200, 5)

	var m Mesh
	m.Rebuild(d, img)

	path := filepath.Join(t.TempDir(), "mesh.svg")
	s := &SVG{Width: 200, Height: 200}
	require.NoError(t, s.Save(path, m.Polygons()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	points, err := LoadVertices(f)
	require.NoError(t, err)

	restored := NewDelaunay()
	for _, p := range points {
		restored.Insert(p)
	}
	var rm Mesh
	rm.Rebuild(restored, img)

	assert.Equal(t, m.Len(), rm.Len())
	assert.ElementsMatch(t, triangles(m.Polygons()), triangles(rm.Polygons()))
}

func TestLoadVertices_Invalid(t *testing.T) {
	_, err := LoadVertices(strings.NewReader(`<svg><polygon points="1,2 3"/></svg>`))
	assert.Error(t, err)

	_, err = LoadVertices(strings.NewReader(`<svg><polygon points="1,a 3,4"/></svg>`))
	assert.Error(t, err)
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints(" 1,2 3.5,4\n5 6 ")
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 2}, {3.5, 4}, {5, 6}}, points)
}

// triangles returns the polygon vertices with a canonical vertex order.
func triangles(polys []Polygon) [][3]Point {
	out := make([][3]Point, len(polys))
	for i, p := range polys {
		v := p.Vertices
		slices.SortFunc(v[:], func(a, b Point) int {
			switch {
			case a.X < b.X || (a.X == b.X && a.Y < b.Y):
				return -1
			case a == b:
				return 0
			}
			return 1
		})
		out[i] = v
	}
	return out
}
