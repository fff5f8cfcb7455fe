package delaunay

import (
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
)

func rightOf(x geom.Point, e Edge) bool {
	return predicates.Orient2D(x, Dest(e).Point, Org(e).Point) > 0
}

func leftOf(x geom.Point, e Edge) bool {
	return predicates.Orient2D(x, Org(e).Point, Dest(e).Point) > 0
}

// OnEdge reports whether x lies on e strictly between its endpoints.
func OnEdge(x geom.Point, e Edge) bool {
	a, b := Org(e).Point, Dest(e).Point
	if predicates.Orient2D(a, b, x) != 0 {
		return false
	}
	ab := b.Sub(a)
	t := x.Sub(a).Dot(ab) / ab.Dot(ab)
	return t > 0 && t < 1
}

func inCircle(a, b, c, d *Vertex) bool {
	return predicates.InCircle(a.Point, b.Point, c.Point, d.Point) > 0
}

// IsRealTriangle reports whether the left face of e is a counterclockwise
// triangle. The unbounded face of a triangulated hull with three corners is
// also a three edge loop, but it winds clockwise.
func IsRealTriangle(e Edge) bool {
	if !IsTriangle(e) {
		return false
	}
	return predicates.Orient2D(Org(e).Point, Dest(e).Point, Dest(e.Lnext()).Point) > 0
}
