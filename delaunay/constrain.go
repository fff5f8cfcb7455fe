package delaunay

import (
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
)

// Linker adds an edge from Dest(a) to Org(b) across the face to the left of
// both, and returns it directed that way. Subdivision.Connect is a Linker for
// subdivisions without faces.
type Linker func(a, b Edge) Edge

// FaceLinker returns a Linker that keeps faces up to date by splitting them.
func FaceLinker(sd *Subdivision) Linker {
	return func(a, b Edge) Edge {
		return sd.SplitFace(a.Lnext(), b)
	}
}

// InsertEdge makes the segment from a to b part of the triangulation as fixed
// edges. Edges crossing the segment are removed, and the two pseudo-polygons
// they leave behind are retriangulated so that the result is constrained
// Delaunay. Vertices lying exactly on the segment split it, so the result is
// the chain of fixed edges from a to b.
func InsertEdge(sd *Subdivision, a, b *Vertex) (chain []Edge, err error) {
	defer internal.Recover(&err)
	if a == b {
		internal.Throwf(ErrPrecondViolation, "cannot constrain a vertex to itself")
	}
	for a != b {
		var e Edge
		e, a = insertSegment(sd, a, b)
		chain = append(chain, e)
	}
	return chain, nil
}

// Inserts the first piece of a-b, up to b or the first vertex on the way,
// which is returned along with the fixed edge.
func insertSegment(sd *Subdivision, a, b *Vertex) (Edge, *Vertex) {
	fan := a.Leaves().Orbit()
	for _, e := range fan {
		d := Dest(e)
		if d == b {
			SetFixed(e, true)
			return e, b
		}
		if predicates.Orient2D(a.Point, b.Point, d.Point) == 0 &&
			d.Point.Sub(a.Point).Dot(b.Point.Sub(a.Point)) > 0 {
			SetFixed(e, true)
			return e, d
		}
	}

	var start Edge
	for _, e := range fan {
		next := e.Onext()
		if leftOf(b.Point, e) && rightOf(b.Point, next) && IsRealTriangle(e) {
			start = e
			break
		}
	}
	if start.IsNil() {
		internal.Throwf(ErrPrecondViolation, "no triangle at %v opens toward %v", a, b)
	}

	// Walk the triangles crossed by the segment. Each crossing edge runs from
	// the right of the segment to the left.
	var crossing []Edge
	before := start.Lnext().Lnext()
	c := start.Lnext()
	target := b
	var after Edge
	for {
		crossing = append(crossing, c)
		back := c.Sym()
		if !IsRealTriangle(back) {
			internal.Throwf(ErrPrecondViolation, "segment %v-%v leaves the triangulation", a, b)
		}
		apex := Dest(back.Lnext())
		if apex == target {
			after = back.Lnext().Lnext()
			break
		}
		side := predicates.Orient2D(a.Point, b.Point, apex.Point)
		if side == 0 {
			target = apex
			after = back.Lnext().Lnext()
			break
		}
		if side > 0 {
			c = back.Lnext()
		} else {
			c = back.Lnext().Lnext()
		}
	}

	for _, c := range crossing {
		if Fixed(c) {
			internal.Throwf(ErrPrecondViolation, "segment %v-%v crosses a fixed edge %v-%v", a, b, Org(c), Dest(c))
		}
	}
	for _, c := range crossing {
		sd.DeleteEdge(c)
	}

	e := sd.Connect(before, after)
	SetFixed(e, true)
	TriangulatePseudoPolygon(e, sd.Connect)
	TriangulatePseudoPolygon(e.Sym(), sd.Connect)
	return e, target
}

// TriangulatePseudoPolygon triangulates the polygon to the left of base, whose
// other vertices must all be visible from base. It picks the vertex c whose
// circle with base is empty of the other vertices, links it to both ends of
// base, and recurses into the pieces cut off.
func TriangulatePseudoPolygon(base Edge, link Linker) {
	if IsTriangle(base) {
		return
	}
	a, b := Org(base).Point, Dest(base).Point

	// Circles through a and b are nested on the left side, so one pass finds
	// the innermost one.
	var best Edge
	for e := base.Lnext().Lnext(); e != base; e = e.Lnext() {
		p := Org(e).Point
		if predicates.Orient2D(a, b, p) <= 0 {
			continue
		}
		if best.IsNil() || predicates.InCircle(a, b, Org(best).Point, p) > 0 {
			best = e
		}
	}
	if best.IsNil() {
		internal.Throwf(ErrPrecondViolation, "no vertex of the polygon sees %v-%v", Org(base), Dest(base))
	}

	if best != base.Lnext().Lnext() {
		bc := link(base, best)
		TriangulatePseudoPolygon(bc.Sym(), link)
	}
	if best.Lnext() != base {
		into := base.Lnext()
		ca := link(into, base)
		TriangulatePseudoPolygon(ca.Sym(), link)
	}
}
