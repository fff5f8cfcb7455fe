// Package subdivision binds vertices and faces to the quad-edge structure and
// provides the Euler operators that edit it.
//
// Every primal stub carries the vertex it leaves from, and every dual stub
// carries the face it sits in. Vertices and faces point back at one edge each.
// The operators in this package are the only code that should rewire edges
// once a subdivision carries faces, since they keep all of those references in
// step.
package subdivision

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/quadmesh/dbg"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/quadedge"
)

type Edge = quadedge.Edge[EdgeData]

// Label is the payload of a single stub: a *Vertex on primal stubs and a *Face
// on dual stubs.
type Label interface {
	labelTypeHint()
}

// EdgeData is the payload slot of each stub. Fixed and Boundary describe the
// whole edge, and are only read from the canonical stub.
type EdgeData struct {
	Label Label

	Fixed    bool
	Boundary bool
}

type Vertex struct {
	Point geom.Point
	// Set on points added by refinement that may be removed again.
	Steiner bool

	leaves     Edge
	prev, next *Vertex
	dead       bool
}

func (*Vertex) labelTypeHint() {}

// Leaves is some edge whose origin is v.
func (v *Vertex) Leaves() Edge {
	return v.leaves
}

func (v *Vertex) Alive() bool {
	return v != nil && !v.dead
}

func (v *Vertex) String() string {
	return fmt.Sprintf("%s(%g, %g)", dbg.Name(v), v.Point.X, v.Point.Y)
}

type Mark int8

const (
	Unclassified Mark = -1
	Outside      Mark = 0
	Inside       Mark = 1
)

func (m Mark) String() string {
	switch m {
	case Unclassified:
		return "unclassified"
	case Outside:
		return "outside"
	case Inside:
		return "inside"
	}
	return fmt.Sprintf("Mark(%d)", int8(m))
}

type Face struct {
	Mark Mark

	bounds     Edge
	prev, next *Face
	dead       bool
}

func (*Face) labelTypeHint() {}

// Bounds is some edge whose left face is f.
func (f *Face) Bounds() Edge {
	return f.bounds
}

func (f *Face) Alive() bool {
	return f != nil && !f.dead
}

// Size is the number of edges around the face.
func (f *Face) Size() int {
	return len(f.bounds.LeftLoop())
}

func (f *Face) DbgName() string {
	name := dbg.Name(f)
	switch f.Mark {
	case Inside:
		return aurora.Green(name).String()
	case Outside:
		return aurora.Cyan(name).String()
	}
	return aurora.Red(name).String()
}

func (f *Face) String() string {
	return fmt.Sprintf("Face %s <%s, %d edges>", f.DbgName(), f.Mark, f.Size())
}

type Subdivision struct {
	store *quadedge.Store[EdgeData]

	vertices  *Vertex // sentinel
	faces     *Face   // sentinel
	nVertices int
	nFaces    int

	// The unbounded face, once faces have been classified.
	OuterFace *Face
}

func NewSubdivision() *Subdivision {
	s := &Subdivision{
		store:    quadedge.NewStore[EdgeData](),
		vertices: &Vertex{},
		faces:    &Face{},
	}
	s.vertices.prev, s.vertices.next = s.vertices, s.vertices
	s.faces.prev, s.faces.next = s.faces, s.faces
	return s
}

// NewSegment creates a subdivision of two vertices joined by one edge, which
// is returned directed from p to q.
func NewSegment(p, q geom.Point) (*Subdivision, Edge) {
	s := NewSubdivision()
	e := s.store.MakeEdge()
	from, to := s.newVertex(p), s.newVertex(q)
	SetOrg(e, from)
	SetDest(e, to)
	from.leaves = e
	to.leaves = e.Sym()
	return s, e
}

func Org(e Edge) *Vertex {
	v, _ := e.Data().Label.(*Vertex)
	return v
}

func Dest(e Edge) *Vertex {
	return Org(e.Sym())
}

func Left(e Edge) *Face {
	f, _ := e.InvRot().Data().Label.(*Face)
	return f
}

func Right(e Edge) *Face {
	f, _ := e.Rot().Data().Label.(*Face)
	return f
}

func SetOrg(e Edge, v *Vertex) {
	if v == nil {
		e.Data().Label = nil
		return
	}
	e.Data().Label = v
}

func SetDest(e Edge, v *Vertex) {
	SetOrg(e.Sym(), v)
}

func SetLeft(e Edge, f *Face) {
	setFace(e.InvRot(), f)
}

func SetRight(e Edge, f *Face) {
	setFace(e.Rot(), f)
}

func setFace(e Edge, f *Face) {
	if f == nil {
		e.Data().Label = nil
		return
	}
	e.Data().Label = f
}

func Fixed(e Edge) bool {
	return e.Canonical().Data().Fixed
}

func SetFixed(e Edge, fixed bool) {
	e.Canonical().Data().Fixed = fixed
}

func Boundary(e Edge) bool {
	return e.Canonical().Data().Boundary
}

func SetBoundary(e Edge, boundary bool) {
	e.Canonical().Data().Boundary = boundary
}

// IsTriangle reports whether the left face of e has exactly three edges.
func IsTriangle(e Edge) bool {
	return e.Lnext().Lnext().Lnext() == e
}

func (s *Subdivision) newVertex(p geom.Point) *Vertex {
	v := &Vertex{Point: p}
	last := s.vertices.prev
	v.prev, v.next = last, s.vertices
	last.next = v
	s.vertices.prev = v
	s.nVertices++
	return v
}

func (s *Subdivision) removeVertex(v *Vertex) {
	v.prev.next = v.next
	v.next.prev = v.prev
	v.prev, v.next = nil, nil
	v.leaves = Edge{}
	v.dead = true
	s.nVertices--
}

func (s *Subdivision) newFace(mark Mark) *Face {
	f := &Face{Mark: mark}
	last := s.faces.prev
	f.prev, f.next = last, s.faces
	last.next = f
	s.faces.prev = f
	s.nFaces++
	return f
}

func (s *Subdivision) removeFace(f *Face) {
	f.prev.next = f.next
	f.next.prev = f.prev
	f.prev, f.next = nil, nil
	f.bounds = Edge{}
	f.dead = true
	s.nFaces--
	if s.OuterFace == f {
		s.OuterFace = nil
	}
}

// Merge moves everything in other into s in O(1). other is left empty.
func (s *Subdivision) Merge(other *Subdivision) {
	s.store.Merge(other.store)

	if other.nVertices > 0 {
		first, last, tail := other.vertices.next, other.vertices.prev, s.vertices.prev
		tail.next, first.prev = first, tail
		last.next, s.vertices.prev = s.vertices, last
		other.vertices.prev, other.vertices.next = other.vertices, other.vertices
		s.nVertices += other.nVertices
		other.nVertices = 0
	}

	if other.nFaces > 0 {
		first, last, tail := other.faces.next, other.faces.prev, s.faces.prev
		tail.next, first.prev = first, tail
		last.next, s.faces.prev = s.faces, last
		other.faces.prev, other.faces.next = other.faces, other.faces
		s.nFaces += other.nFaces
		other.nFaces = 0
	}
	other.OuterFace = nil
}

func (s *Subdivision) NumVertices() int {
	return s.nVertices
}

func (s *Subdivision) NumEdges() int {
	return s.store.Len()
}

func (s *Subdivision) NumFaces() int {
	return s.nFaces
}

// AnyEdge returns some live edge, or the nil edge if there are none.
func (s *Subdivision) AnyEdge() Edge {
	return s.store.First()
}

// Edges returns the canonical stub of every edge. The slice is a snapshot.
func (s *Subdivision) Edges() []Edge {
	return s.store.Edges()
}

func (s *Subdivision) Vertices() []*Vertex {
	result := make([]*Vertex, 0, s.nVertices)
	for v := s.vertices.next; v != s.vertices; v = v.next {
		result = append(result, v)
	}
	return result
}

func (s *Subdivision) Faces() []*Face {
	result := make([]*Face, 0, s.nFaces)
	for f := s.faces.next; f != s.faces; f = f.next {
		result = append(result, f)
	}
	return result
}

// ClearFaces forgets every face and wipes the dual labels.
func (s *Subdivision) ClearFaces() {
	for _, e := range s.Edges() {
		SetLeft(e, nil)
		SetRight(e, nil)
	}
	for f := s.faces.next; f != s.faces; {
		next := f.next
		s.removeFace(f)
		f = next
	}
	s.OuterFace = nil
}

// AddFace registers a fresh face with the given mark and no edges. The caller
// is responsible for labelling its boundary and setting its bounds with
// SetFaceBounds.
func (s *Subdivision) AddFace(mark Mark) *Face {
	return s.newFace(mark)
}

func SetFaceBounds(f *Face, e Edge) {
	f.bounds = e
}
