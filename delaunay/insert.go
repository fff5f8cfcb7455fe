package delaunay

import (
	"github.com/osuushi/quadmesh/geom"
	. "github.com/osuushi/quadmesh/subdivision"
	"github.com/pkg/errors"
)

// Locate walks from hint toward x and returns an edge e such that x lies on e,
// or strictly inside the left face of e, or coincides with Org(e) or Dest(e).
// A nil hint starts anywhere. The walk takes at most one step per edge in the
// subdivision, which is enough for any Delaunay triangulation; running out of
// steps, which happens for points outside the hull, yields ErrLocateFailure.
func Locate(sd *Subdivision, x geom.Point, hint Edge) (Edge, error) {
	e := hint
	if e.IsNil() || !e.Record().Alive() {
		e = sd.AnyEdge()
	}
	if e.IsNil() {
		return e, errors.Wrap(ErrLocateFailure, "subdivision is empty")
	}

	for steps := sd.NumEdges(); steps >= 0; steps-- {
		if x == Org(e).Point || x == Dest(e).Point {
			return e, nil
		}
		if OnEdge(x, e) {
			return e, nil
		}
		if rightOf(x, e) {
			e = e.Sym()
		} else if !rightOf(x, e.Onext()) {
			e = e.Onext()
		} else if !rightOf(x, e.Dprev()) {
			e = e.Dprev()
		} else {
			return e, nil
		}
	}
	return e, errors.Wrapf(ErrLocateFailure, "no triangle found for %v", x)
}

type InsertionKind int

const (
	Inserted InsertionKind = iota
	// The point coincided with an existing vertex, and nothing changed.
	Duplicate
)

func (k InsertionKind) String() string {
	if k == Duplicate {
		return "duplicate"
	}
	return "inserted"
}

// Insertion is the outcome of InsertSite. Vertex is the vertex at the inserted
// point, either new or the existing duplicate, and Edge leaves it. Edge makes a
// good hint for the next Locate.
type Insertion struct {
	Kind   InsertionKind
	Vertex *Vertex
	Edge   Edge
}

// InsertSite adds x to a Delaunay triangulation and restores the Delaunay
// property by flipping edges. Fixed edges are never flipped, so on a
// constrained triangulation the result is constrained Delaunay. A point on a
// fixed edge splits it into two fixed halves.
//
// Points outside the triangulated region fail with ErrLocateFailure.
func InsertSite(sd *Subdivision, x geom.Point, hint Edge) (Insertion, error) {
	e, err := Locate(sd, x, hint)
	if err != nil {
		return Insertion{}, err
	}

	switch x {
	case Org(e).Point:
		return Insertion{Kind: Duplicate, Vertex: Org(e), Edge: e}, nil
	case Dest(e).Point:
		return Insertion{Kind: Duplicate, Vertex: Dest(e), Edge: e.Sym()}, nil
	}

	var v *Vertex
	if OnEdge(x, e) {
		v = SplitEdge(sd, e, x)
	} else if IsRealTriangle(e) {
		v = Org(sd.InsertInFace(e, x))
	} else {
		return Insertion{}, errors.Wrapf(ErrLocateFailure, "%v is outside the triangulation", x)
	}

	Legalize(sd, v)
	return Insertion{Kind: Inserted, Vertex: v, Edge: v.Leaves()}, nil
}

// InsertSiteSequence inserts each point in turn, using each insertion as the
// hint for the next. Returns the number of points actually added.
func InsertSiteSequence(sd *Subdivision, points []geom.Point, hint Edge) (int, error) {
	count := 0
	for _, x := range points {
		insertion, err := InsertSite(sd, x, hint)
		if err != nil {
			return count, err
		}
		if insertion.Kind == Inserted {
			count++
		}
		hint = insertion.Edge
	}
	return count, nil
}

// SplitEdge puts a new vertex at x, which must lie on e, and joins it to the
// apex of each real triangle beside e. Both halves of e keep its fixed and
// boundary flags. The result is a triangulation again, though not necessarily
// a Delaunay one.
func SplitEdge(sd *Subdivision, e Edge, x geom.Point) *Vertex {
	left, right := IsRealTriangle(e), IsRealTriangle(e.Sym())

	half := sd.SplitVertex(e, e.Oprev(), x)
	SetFixed(half, Fixed(e))
	SetBoundary(half, Boundary(e))

	if left {
		sd.SplitFace(e, e.Lnext().Lnext())
	}
	if right {
		sd.SplitFace(half.Sym(), half.Sym().Lnext().Lnext())
	}
	return Dest(half)
}

// Legalize flips edges around v until every unfixed edge opposite v passes the
// in-circle test. Only edges that v's insertion could have invalidated are
// examined, so the rest of the triangulation must already be legal.
func Legalize(sd *Subdivision, v *Vertex) {
	var stack EdgeStack
	for _, spoke := range v.Leaves().Orbit() {
		if IsRealTriangle(spoke) {
			stack.Push(spoke.Lnext())
		}
	}

	for !stack.Empty() {
		e := stack.Pop()
		if Fixed(e) || !IsRealTriangle(e) || Dest(e.Lnext()) != v {
			continue
		}
		back := e.Sym()
		if !IsRealTriangle(back) {
			continue
		}
		if !inCircle(Org(e), Dest(e), v, Dest(back.Lnext())) {
			continue
		}

		// The two far sides of the triangle behind e face v after the flip
		near, far := back.Lnext(), back.Lnext().Lnext()
		sd.Swap(e)
		stack.Push(near)
		stack.Push(far)
	}
}
