package subdivision

import (
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/quadedge"
)

// Connect adds an edge from Dest(a) to Org(b). a and b must share their left
// face, which the new edge splits so that e.Lnext() == b and a.Lnext() == e.
// No faces are created; use SplitFace on a subdivision that carries faces.
func (s *Subdivision) Connect(a, b Edge) Edge {
	e := s.store.MakeEdge()
	SetOrg(e, Dest(a))
	SetDest(e, Org(b))
	quadedge.Splice(e, a.Lnext())
	quadedge.Splice(e.Sym(), b)
	return e
}

// AddVertex creates a vertex at p joined by a new edge to Dest(e). The edge is
// inserted into the left face of e and returned directed toward p.
func (s *Subdivision) AddVertex(e Edge, p geom.Point) Edge {
	v := s.newVertex(p)
	a := s.store.MakeEdge()
	SetOrg(a, Dest(e))
	SetDest(a, v)
	v.leaves = a.Sym()
	quadedge.Splice(e.Lnext(), a)
	return a
}

// Panics unless both endpoints of e keep some other edge once e is gone.
func checkDetachable(e Edge) {
	for _, x := range [2]Edge{e, e.Sym()} {
		if x.Onext() == x {
			internal.Throwf(ErrPrecondViolation, "vertex %v is only supported by the edge being removed", Org(x))
		}
	}
}

// Moves endpoint back references off of e.
func releaseEndpoints(e Edge) {
	for _, x := range [2]Edge{e, e.Sym()} {
		if v := Org(x); v != nil && v.leaves == x {
			v.leaves = x.Onext()
		}
	}
}

// DeleteEdge removes e. Both endpoints must have another edge. Faces are not
// maintained; use JoinFace on a subdivision that carries faces.
func (s *Subdivision) DeleteEdge(e Edge) {
	checkDetachable(e)
	releaseEndpoints(e)
	s.store.DeleteEdge(e)
}

// Swap turns e, the diagonal of the quadrilateral formed by its two adjacent
// triangles, into the other diagonal. The record of e is reused, so references
// to it remain valid and now address the new diagonal, directed so that the
// old e.Oprev() ends at its origin. If the subdivision carries faces, the two
// faces are kept and relabelled. Fixed edges cannot be swapped.
func (s *Subdivision) Swap(e Edge) {
	if Fixed(e) {
		internal.Throwf(ErrPrecondViolation, "cannot swap fixed edge %v-%v", Org(e), Dest(e))
	}
	f, g := Left(e), Right(e)
	if f != nil && g != nil && f.Mark != g.Mark {
		internal.Throwf(ErrPrecondViolation, "cannot swap edge between %s and %s faces", f.Mark, g.Mark)
	}
	checkDetachable(e)
	releaseEndpoints(e)

	a := e.Oprev()
	b := e.Sym().Oprev()
	quadedge.Splice(e, a)
	quadedge.Splice(e.Sym(), b)
	quadedge.Splice(e, a.Lnext())
	quadedge.Splice(e.Sym(), b.Lnext())
	SetOrg(e, Dest(a))
	SetDest(e, Dest(b))

	if f != nil && g != nil {
		relabelLoop(e, f)
		relabelLoop(e.Sym(), g)
	}
}

// Labels the whole left loop of e with f and makes e the bounds of f.
func relabelLoop(e Edge, f *Face) {
	for _, x := range e.LeftLoop() {
		SetLeft(x, f)
	}
	f.bounds = e
}

// Some edge of the left loop of e on a different record than e.
func survivor(e Edge) Edge {
	for c := e.Lnext(); c != e; c = c.Lnext() {
		if c.Record() != e.Record() {
			return c
		}
	}
	internal.Throwf(ErrPrecondViolation, "face of %v-%v has no other edge", Org(e), Dest(e))
	return Edge{}
}

// SplitVertex moves part of the edge fan of a vertex onto a new vertex at p.
// a and b must leave the same vertex. The edges from b.Onext() counterclockwise
// through a are moved, and a new edge joins the old vertex to the new one,
// taking the angular place of the moved fan. The new edge is returned, directed
// toward p. Faces keep their identity; each just gains the new edge.
//
// With b == a.Oprev(), only a moves, which bisects a at p.
func (s *Subdivision) SplitVertex(a, b Edge, p geom.Point) Edge {
	v := Org(a)
	if Org(b) != v {
		internal.Throwf(ErrPrecondViolation, "split vertex edges leave different vertices %v and %v", v, Org(b))
	}
	if a == b {
		internal.Throwf(ErrPrecondViolation, "split vertex needs two distinct edges")
	}

	var moved []Edge
	for x := b.Onext(); ; x = x.Onext() {
		moved = append(moved, x)
		if x == a {
			break
		}
	}
	leftFace, rightFace := Left(a), Left(b)

	w := s.newVertex(p)
	quadedge.Splice(b, a)
	e := s.store.MakeEdge()
	quadedge.Splice(e, b)
	quadedge.Splice(e.Sym(), a)

	SetOrg(e, v)
	SetDest(e, w)
	w.leaves = e.Sym()
	for _, x := range moved {
		SetOrg(x, w)
		if v.leaves == x {
			v.leaves = e
		}
	}

	SetLeft(e, leftFace)
	SetRight(e, rightFace)
	return e
}

// JoinVertex undoes SplitVertex: e is removed and Dest(e) is merged into
// Org(e), whose fan takes over every remaining edge of Dest(e).
func (s *Subdivision) JoinVertex(e Edge) {
	v, w := Org(e), Dest(e)
	if v == w {
		internal.Throwf(ErrPrecondViolation, "cannot join a loop edge")
	}
	b := e.Oprev()
	a := e.Sym().Oprev()
	if b == e && a == e.Sym() {
		internal.Throwf(ErrPrecondViolation, "joining %v into %v would leave an isolated vertex", w, v)
	}

	var moved []Edge
	for x := e.Sym().Onext(); x != e.Sym(); x = x.Onext() {
		moved = append(moved, x)
	}

	if f := Left(e); f != nil {
		f.bounds = survivor(e)
	}
	if g := Right(e); g != nil {
		g.bounds = survivor(e.Sym())
	}

	for _, x := range moved {
		SetOrg(x, v)
	}
	if v.leaves == e {
		if b != e {
			v.leaves = b
		} else {
			v.leaves = moved[0]
		}
	}

	s.store.DeleteEdge(e)
	if b != e && a != e.Sym() {
		quadedge.Splice(b, a)
	}
	s.removeVertex(w)
}

// SplitFace adds an edge from Org(a) to Org(b), which must lie on the same
// face. The old face stays on the left of the new edge, along with b; the part
// holding a becomes a new face with the same mark. Returns the new edge.
//
// On a subdivision without faces this is just Connect.
func (s *Subdivision) SplitFace(a, b Edge) Edge {
	f := Left(a)
	if Left(b) != f {
		internal.Throwf(ErrPrecondViolation, "split face edges border different faces")
	}
	if a == b {
		internal.Throwf(ErrPrecondViolation, "split face needs two distinct edges")
	}

	e := s.Connect(a.Lprev(), b)
	if f == nil {
		return e
	}

	g := s.newFace(f.Mark)
	SetLeft(e, f)
	relabelLoop(e.Sym(), g)
	f.bounds = e
	return e
}

// JoinFace undoes SplitFace: the right face of e is absorbed into the left
// face and e is removed.
func (s *Subdivision) JoinFace(e Edge) {
	f, g := Left(e), Right(e)
	if f == nil || g == nil {
		internal.Throwf(ErrPrecondViolation, "join face on an edge without faces")
	}
	if f == g {
		internal.Throwf(ErrPrecondViolation, "edge %v-%v has the same face on both sides", Org(e), Dest(e))
	}
	checkDetachable(e)

	for _, x := range e.Sym().LeftLoop() {
		if x != e.Sym() {
			SetLeft(x, f)
		}
	}
	f.bounds = survivor(e)
	if s.OuterFace == g {
		s.OuterFace = f
	}

	releaseEndpoints(e)
	s.store.DeleteEdge(e)
	s.removeFace(g)
}

// InsertInFace places a new vertex at p inside the left face of e, and joins it
// to every corner of that face. The face must be a simple polygon containing
// p. New faces inherit the face's mark. Returns an edge leaving the new vertex.
func (s *Subdivision) InsertInFace(e Edge, p geom.Point) Edge {
	f := Left(e)
	spoke := s.AddVertex(e.Lprev(), p)
	SetLeft(spoke, f)
	SetRight(spoke, f)

	x := spoke.Sym()
	for !IsTriangle(x) {
		x = s.SplitFace(x, x.Lnext().Lnext())
	}
	return x
}
