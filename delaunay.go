package lowpoly

import "math"

// Extent bounds the coordinates accepted by the Delaunay triangulation.
// Points are expected to lie inside the [-Extent, Extent] square.
const Extent = 1e4

// Triangulation is the incremental planar triangulation the mesh is built on.
type Triangulation interface {
	// Insert adds a vertex and reports whether the triangulation changed.
	Insert(p Point) bool
	// Faces returns the triangles, each one as a vertex triple.
	Faces() [][3]Point
	// Edges returns the unique edges as endpoint pairs.
	Edges() [][2]Point
	// Len returns the number of inserted vertices.
	Len() int
}

// ghost is the vertex at infinity closing every convex hull edge.
const ghost = -1

// node is a triangulation vertex in float64 precision.
type node struct {
	x, y float64
}

// circle is the circumcircle of a triangle. The radius is kept squared.
type circle struct {
	x, y, radius float64
}

// edge holds the indices of two nodes.
type edge [2]int

// isEq checks whether two edges connect the same nodes, regardless of direction.
func (e edge) isEq(o edge) bool {
	return (e[0] == o[0] && e[1] == o[1]) || (e[0] == o[1] && e[1] == o[0])
}

// triangle is defined by three node indices in counter-clockwise order and
// its circumcircle. A ghost triangle has its ghost vertex last: it stands for
// the open half-plane on the left of the hull edge nodes[0]-nodes[1], outside
// of the hull.
type triangle struct {
	nodes  [3]int
	circle circle
}

func (t triangle) edges() [3]edge {
	return [3]edge{
		{t.nodes[0], t.nodes[1]},
		{t.nodes[1], t.nodes[2]},
		{t.nodes[2], t.nodes[0]},
	}
}

func (t triangle) isGhost() bool {
	return t.nodes[2] == ghost
}

// Delaunay is an incremental Bowyer-Watson Delaunay triangulation.
//
// Every convex hull edge is closed by a ghost triangle sharing a vertex at
// infinity, so points falling outside of the hull are inserted like any other.
// Ghost triangles are never exposed through Faces or Edges. Vertices are
// buffered until the first three non-collinear ones are known.
type Delaunay struct {
	nodes     []node
	triangles []triangle
	points    map[Point]struct{}
}

// NewDelaunay returns an empty triangulation.
func NewDelaunay() *Delaunay {
	d := &Delaunay{}
	d.clear()

	return d
}

// clear resets the triangulation.
func (d *Delaunay) clear() {
	d.nodes = nil
	d.triangles = nil
	d.points = make(map[Point]struct{})
}

// newTriangle creates a triangle together with its circumscribed circle.
func newTriangle(nodes []node, i0, i1, i2 int) triangle {
	p0, p1, p2 := nodes[i0], nodes[i1], nodes[i2]

	// Compute relative to p0 to keep the precision on large coordinates.
	ax, ay := p1.x-p0.x, p1.y-p0.y
	bx, by := p2.x-p0.x, p2.y-p0.y

	m := ax*ax + ay*ay
	u := bx*bx + by*by
	s := 2 * (ax*by - ay*bx)

	t := triangle{nodes: [3]int{i0, i1, i2}}
	if s == 0 {
		// Degenerate triangles get an infinite circle, so the next
		// insertion replaces them.
		t.circle = circle{x: p0.x, y: p0.y, radius: math.Inf(1)}
		return t
	}
	cx := (by*m - ay*u) / s
	cy := (ax*u - bx*m) / s

	t.circle = circle{x: p0.x + cx, y: p0.y + cy, radius: cx*cx + cy*cy}
	return t
}

// newGhost creates the ghost triangle beyond the hull edge i0-i1.
func newGhost(i0, i1 int) triangle {
	return triangle{nodes: [3]int{i0, i1, ghost}}
}

// orient returns twice the signed area of the triangle abc. It is positive
// when the triangle is counter-clockwise.
func orient(a, b, c node) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// encloses reports whether n falls inside the circumcircle of t. The circle
// of a ghost triangle degenerates into the open half-plane beyond its hull
// edge plus the open edge itself.
func (d *Delaunay) encloses(t triangle, n node) bool {
	if t.isGhost() {
		a, b := d.nodes[t.nodes[0]], d.nodes[t.nodes[1]]

		o := orient(a, b, n)
		if o != 0 {
			return o > 0
		}
		// Collinear with the hull edge: inside only between its endpoints.
		return (n.x-a.x)*(b.x-a.x)+(n.y-a.y)*(b.y-a.y) > 0 &&
			(n.x-b.x)*(a.x-b.x)+(n.y-b.y)*(a.y-b.y) > 0
	}
	dx := t.circle.x - n.x
	dy := t.circle.y - n.y

	return dx*dx+dy*dy <= t.circle.radius*(1+1e-12)
}

// Insert adds a new vertex to the triangulation. Duplicated vertices and
// vertices outside of the working area are ignored.
func (d *Delaunay) Insert(p Point) bool {
	if _, ok := d.points[p]; ok {
		return false
	}
	x, y := float64(p.X), float64(p.Y)
	if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x) > Extent || math.Abs(y) > Extent {
		return false
	}
	d.points[p] = struct{}{}
	d.nodes = append(d.nodes, node{x, y})
	idx := len(d.nodes) - 1

	if d.triangles != nil {
		d.insert(idx)
		return true
	}
	if idx < 2 || orient(d.nodes[0], d.nodes[1], d.nodes[idx]) == 0 {
		// Still collinear, nothing to triangulate yet.
		return true
	}

	i0, i1 := 0, 1
	if orient(d.nodes[0], d.nodes[1], d.nodes[idx]) < 0 {
		i0, i1 = 1, 0
	}
	d.triangles = []triangle{
		newTriangle(d.nodes, i0, i1, idx),
		newGhost(i1, i0),
		newGhost(idx, i1),
		newGhost(i0, idx),
	}
	for i := 2; i < idx; i++ {
		d.insert(i)
	}
	return true
}

// insert retriangulates the cavity formed by the triangles whose
// circumcircle encloses the node idx.
func (d *Delaunay) insert(idx int) {
	n := d.nodes[idx]

	var (
		edges   []edge
		temps   []triangle
		polygon []edge
	)

	for _, t := range d.triangles {
		if d.encloses(t, n) {
			e := t.edges()
			edges = append(edges, e[0], e[1], e[2])
		} else {
			temps = append(temps, t)
		}
	}

	// Edges shared by two removed triangles are interior to the cavity.
edgesLoop:
	for _, e := range edges {
		for j := 0; j < len(polygon); j++ {
			if e.isEq(polygon[j]) {
				polygon = append(polygon[:j], polygon[j+1:]...)
				continue edgesLoop
			}
		}
		polygon = append(polygon, e)
	}

	// The cavity lies on the left of its boundary edges, so joining them to
	// the new node keeps the counter-clockwise order.
	for _, e := range polygon {
		switch ghost {
		case e[0]:
			temps = append(temps, newGhost(e[1], idx))
		case e[1]:
			temps = append(temps, newGhost(idx, e[0]))
		default:
			temps = append(temps, newTriangle(d.nodes, e[0], e[1], idx))
		}
	}
	d.triangles = temps
}

func (d *Delaunay) point(i int) Point {
	n := d.nodes[i]
	return Point{X: float32(n.x), Y: float32(n.y)}
}

// Faces returns the finite triangles.
func (d *Delaunay) Faces() [][3]Point {
	var faces [][3]Point

	for _, t := range d.triangles {
		if t.isGhost() {
			continue
		}
		n := t.nodes
		faces = append(faces, [3]Point{d.point(n[0]), d.point(n[1]), d.point(n[2])})
	}
	return faces
}

// Edges returns every edge of the exposed faces once, in order of first appearance.
func (d *Delaunay) Edges() [][2]Point {
	var (
		edges [][2]Point
		seen  = make(map[edge]struct{})
	)

	for _, t := range d.triangles {
		if t.isGhost() {
			continue
		}
		for _, e := range t.edges() {
			key := e
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			edges = append(edges, [2]Point{d.point(e[0]), d.point(e[1])})
		}
	}
	return edges
}

// Len returns the number of vertices inserted by the caller.
func (d *Delaunay) Len() int {
	return len(d.points)
}
