package lowpoly

import (
	"image"
	"io"

	petname "github.com/dustinkirkland/golang-petname"
	"go.uber.org/multierr"
	"golang.org/x/exp/slog"
)

const (
	// DefaultWidth is the default canvas width of the interactive view.
	DefaultWidth = 1280
	// DefaultHeight is the default canvas height of the interactive view.
	DefaultHeight = 960

	zoomFactor = 1.02
	panStep    = 5
)

// State describes what the session is doing.
type State int

const (
	// Idle means the session waits for input.
	Idle State = iota
	// Mutating means a vertex is being inserted and the mesh rebuilt.
	Mutating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Mutating:
		return "mutating"
	}
	return "unknown"
}

// Key identifies a key with held-key semantics.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
)

// Event is an input consumed by Session.Update.
type Event interface {
	isEvent()
}

// Click inserts the vertex found under the screen position X, Y.
type Click struct {
	X, Y float32
}

// KeyChange reports a key being pressed or released.
type KeyChange struct {
	Key     Key
	Pressed bool
}

// ToggleFaces flips the faces visibility.
type ToggleFaces struct{}

// ToggleEdges flips the edges visibility.
type ToggleEdges struct{}

// ExportRequested asks for the mesh to be saved as SVG.
// An empty Path falls back to the session output path.
type ExportRequested struct {
	Path string
}

func (Click) isEvent()           {}
func (KeyChange) isEvent()       {}
func (ToggleFaces) isEvent()     {}
func (ToggleEdges) isEvent()     {}
func (ExportRequested) isEvent() {}

// View is the pan and zoom transform applied between image and screen space.
type View struct {
	X, Y  float32
	Scale float32
}

// SessionOptions configures a new Session.
type SessionOptions struct {
	Width  int
	Height int
	// Output is the export destination. When empty every export gets a
	// new generated file name.
	Output string
	// Exporter encodes the exports. It defaults to an SVG sized like the image.
	Exporter *SVG
	// Triangulation defaults to an empty Delaunay triangulation.
	Triangulation Triangulation
	Logger        *slog.Logger
}

// Session holds the state of an interactive triangulation.
type Session struct {
	View      View
	ShowFaces bool
	ShowEdges bool

	width    int
	height   int
	image    *image.NRGBA
	tri      Triangulation
	mesh     Mesh
	keys     [KeyZoomOut + 1]bool
	queue    []Event
	state    State
	exporter *SVG
	output   string
	log      *slog.Logger
}

// NewSession creates a session over the source image.
func NewSession(img *image.NRGBA, opts SessionOptions) *Session {
	s := &Session{
		View:      View{Scale: 1},
		ShowEdges: true,
		width:     opts.Width,
		height:    opts.Height,
		image:     img,
		tri:       opts.Triangulation,
		exporter:  opts.Exporter,
		output:    opts.Output,
		log:       opts.Logger,
	}
	if s.width <= 0 {
		s.width = DefaultWidth
	}
	if s.height <= 0 {
		s.height = DefaultHeight
	}
	if s.tri == nil {
		s.tri = NewDelaunay()
	}
	if s.exporter == nil {
		s.exporter = &SVG{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.mesh.Rebuild(s.tri, s.image)

	return s
}

// Image returns the source image.
func (s *Session) Image() *image.NRGBA { return s.image }

// State returns the current session state.
func (s *Session) State() State { return s.state }

// Size returns the canvas size.
func (s *Session) Size() (int, int) { return s.width, s.height }

// Polygons returns a snapshot of the mesh faces.
func (s *Session) Polygons() []Polygon { return s.mesh.Polygons() }

// Edges returns the triangulation edges.
func (s *Session) Edges() [][2]Point { return s.tri.Edges() }

// Len returns the number of inserted vertices.
func (s *Session) Len() int { return s.tri.Len() }

// Moving reports whether a held key still changes the view.
func (s *Session) Moving() bool {
	for _, k := range s.keys {
		if k {
			return true
		}
	}
	return false
}

// Dispatch queues an event for the next Update.
func (s *Session) Dispatch(e Event) {
	s.queue = append(s.queue, e)
}

// Update advances the session by one frame: the held keys move the view,
// then every queued event is applied once. Export failures don't stop the
// queue; they are returned together once it has been drained.
func (s *Session) Update() error {
	s.move()

	queue := s.queue
	s.queue = nil

	var errs error
	for _, e := range queue {
		switch e := e.(type) {
		case Click:
			s.Insert(s.ScreenToImage(Point{X: e.X, Y: e.Y}))
		case KeyChange:
			if e.Key >= 0 && int(e.Key) < len(s.keys) {
				s.keys[e.Key] = e.Pressed
			}
		case ToggleFaces:
			s.ShowFaces = !s.ShowFaces
		case ToggleEdges:
			s.ShowEdges = !s.ShowEdges
		case ExportRequested:
			if _, err := s.Export(e.Path); err != nil {
				s.log.Error("export failed", "err", err)
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

// move applies the held keys to the view transform.
func (s *Session) move() {
	v := &s.View
	if s.keys[KeyZoomIn] {
		v.Scale *= zoomFactor
	}
	if s.keys[KeyZoomOut] {
		v.Scale /= zoomFactor
	}
	if s.keys[KeyLeft] {
		v.X += panStep / v.Scale
	}
	if s.keys[KeyRight] {
		v.X -= panStep / v.Scale
	}
	if s.keys[KeyUp] {
		v.Y += panStep / v.Scale
	}
	if s.keys[KeyDown] {
		v.Y -= panStep / v.Scale
	}
}

// Insert adds an image space vertex to the triangulation and rebuilds the
// mesh. It reports false when the triangulation rejected the vertex.
func (s *Session) Insert(p Point) bool {
	s.state = Mutating
	defer func() { s.state = Idle }()

	if !s.tri.Insert(p) {
		s.log.Debug("vertex rejected", "x", p.X, "y", p.Y)
		return false
	}
	s.mesh.Rebuild(s.tri, s.image)
	s.log.Debug("vertex inserted", "x", p.X, "y", p.Y, "faces", s.mesh.Len())

	return true
}

// InsertAll adds a batch of vertices and rebuilds the mesh once all of them
// are in place. It returns the number of accepted vertices.
func (s *Session) InsertAll(points []Point) int {
	s.state = Mutating
	defer func() { s.state = Idle }()

	var n int
	for _, p := range points {
		if s.tri.Insert(p) {
			n++
		}
	}
	if n > 0 {
		s.mesh.Rebuild(s.tri, s.image)
	}
	s.log.Debug("vertices inserted", "accepted", n, "total", len(points), "faces", s.mesh.Len())

	return n
}

// Export saves the current mesh and returns the path it was written to.
func (s *Session) Export(path string) (string, error) {
	if path == "" {
		path = s.output
	}
	if path == "" {
		path = "lowpoly-" + petname.Generate(2, "-") + ".svg"
	}
	if err := s.exporter.Save(path, s.mesh.Polygons()); err != nil {
		return path, err
	}
	s.log.Info("mesh exported", "path", path, "faces", s.mesh.Len())

	return path, nil
}

// ScreenToImage maps a screen position to image space.
func (s *Session) ScreenToImage(p Point) Point {
	return p.Scale(1 / s.View.Scale).Add(Point{X: -s.View.X, Y: -s.View.Y})
}

// ImageToScreen maps an image space point to the screen.
func (s *Session) ImageToScreen(p Point) Point {
	return p.Add(Point{X: s.View.X, Y: s.View.Y}).Scale(s.View.Scale)
}

// Visible reports whether a screen position lies on the canvas.
func (s *Session) Visible(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float32(s.width) && p.Y < float32(s.height)
}
