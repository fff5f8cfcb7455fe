// Package mesh builds constrained Delaunay meshes of planar domains, classifies
// their faces as inside or outside, and refines them until every inside
// triangle meets a quality bound.
package mesh

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
	"github.com/pkg/errors"
)

var ErrEmptyDomain = errors.New("domain has no boundary")

// Domain describes the region to mesh.
type Domain struct {
	// Closed loops. Crossing any of them toggles between outside and inside,
	// so a loop nested in another is a hole, and a loop in a hole is an island.
	// Winding does not matter.
	Boundaries []geom.Polygon
	// Segments that must appear in the mesh without separating inside from
	// outside.
	Segments [][2]geom.Point
	// Extra points to include.
	Points []geom.Point
}

func (d Domain) points() []geom.Point {
	var points []geom.Point
	for _, loop := range d.Boundaries {
		points = append(points, loop.Points...)
	}
	for _, segment := range d.Segments {
		points = append(points, segment[0], segment[1])
	}
	return append(points, d.Points...)
}

type Mesh struct {
	sd   *Subdivision
	opts Options
	log  *log.Logger
	// Last edge touched by an insertion, to start the next walk from.
	hint Edge
}

// New triangulates the domain, constrains its boundaries and segments, and
// classifies the faces.
func New(domain Domain, opts Options) (m *Mesh, err error) {
	defer internal.Recover(&err)

	if len(domain.Boundaries) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	sd, le, _, err := delaunay.Build(geom.SortedUnique(domain.points()))
	if err != nil {
		return nil, err
	}

	vertexAt := make(map[geom.Point]*Vertex, sd.NumVertices())
	for _, v := range sd.Vertices() {
		vertexAt[v.Point] = v
	}
	constrain := func(p, q geom.Point, boundary bool) {
		if p == q {
			return
		}
		chain, err := delaunay.InsertEdge(sd, vertexAt[p], vertexAt[q])
		if err != nil {
			internal.Throwf(err, "constraining %v-%v", p, q)
		}
		for _, e := range chain {
			// Edges shared by two loops cancel out
			if boundary {
				SetBoundary(e, !Boundary(e))
			}
		}
	}

	for _, loop := range domain.Boundaries {
		if len(loop.Points) < 3 {
			return nil, errors.Wrapf(ErrEmptyDomain, "boundary loop with %d points", len(loop.Points))
		}
		for i, p := range loop.Points {
			constrain(p, loop.Points[geom.CircularIndex(i+1, len(loop.Points))], true)
		}
	}
	for _, segment := range domain.Segments {
		constrain(segment[0], segment[1], false)
	}

	InitFaces(sd)
	MarkOuterFaces(sd, le.Sym())

	m = &Mesh{
		sd:   sd,
		opts: opts,
		log:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	m.log.Debug("built mesh", "vertices", sd.NumVertices(), "edges", sd.NumEdges(), "faces", sd.NumFaces())
	return m, nil
}

// Subdivision exposes the underlying topology. Callers must not edit it.
func (m *Mesh) Subdivision() *Subdivision {
	return m.sd
}

func (m *Mesh) Options() Options {
	return m.opts
}

func (m *Mesh) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	m.opts = opts
	return nil
}

func (m *Mesh) SetLogger(logger *log.Logger) {
	m.log = logger
}

func (m *Mesh) Validate() error {
	return m.sd.Validate()
}

// Triangles returns the corners of every inside triangle, counterclockwise.
func (m *Mesh) Triangles() [][3]geom.Point {
	var result [][3]geom.Point
	for _, f := range m.insideTriangles() {
		a, b, c := corners(f)
		result = append(result, [3]geom.Point{a, b, c})
	}
	return result
}

// Contains reports whether p lies in an inside face or on its boundary.
func (m *Mesh) Contains(p geom.Point) bool {
	start := m.anyTriangle()
	if start.IsNil() {
		return false
	}
	e, stop := m.walk(start, p, true)
	if stop != arrived {
		return false
	}
	for _, y := range e.LeftLoop() {
		if Left(y).Mark == Inside {
			return true
		}
		if predicates.Orient2D(Org(y).Point, Dest(y).Point, p) == 0 && Right(y).Mark == Inside {
			return true
		}
	}
	return false
}

func (m *Mesh) isInsideTriangle(f *Face) bool {
	return f.Alive() && f.Mark == Inside && f != m.sd.OuterFace && delaunay.IsRealTriangle(f.Bounds())
}

func (m *Mesh) insideTriangles() []*Face {
	var result []*Face
	for _, f := range m.sd.Faces() {
		if m.isInsideTriangle(f) {
			result = append(result, f)
		}
	}
	return result
}

// Some edge with a real triangle to its left, preferring the hint and inside
// triangles.
func (m *Mesh) startEdge(hint Edge) Edge {
	for _, e := range []Edge{hint, m.hint} {
		if !e.IsNil() && e.Record().Alive() && m.isInsideTriangle(Left(e)) {
			return e
		}
	}
	for _, f := range m.sd.Faces() {
		if m.isInsideTriangle(f) {
			return f.Bounds()
		}
	}
	return m.anyTriangle()
}

func (m *Mesh) anyTriangle() Edge {
	for _, f := range m.sd.Faces() {
		if f != m.sd.OuterFace && delaunay.IsRealTriangle(f.Bounds()) {
			return f.Bounds()
		}
	}
	return Edge{}
}

func corners(f *Face) (a, b, c geom.Point) {
	e := f.Bounds()
	return Org(e).Point, Dest(e).Point, Dest(e.Lnext()).Point
}
