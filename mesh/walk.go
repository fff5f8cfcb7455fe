package mesh

import (
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
)

type walkStop int

const (
	// The point is in the closed triangle left of the returned edge.
	arrived walkStop = iota
	// The point is beyond the returned edge, which is fixed.
	blocked
	// The point is beyond the returned edge, outside the triangulation.
	escaped
)

func rightOf(x geom.Point, e Edge) bool {
	return predicates.Orient2D(x, Dest(e).Point, Org(e).Point) > 0
}

// Walks triangle to triangle from the one left of start toward x, crossing the
// first edge that has x strictly beyond it. Which edge is tried first rotates
// with each step, which keeps the walk from circling forever in triangulations
// that are not Delaunay.
func (m *Mesh) walk(start Edge, x geom.Point, crossFixed bool) (Edge, walkStop) {
	e := start
	for step := 0; step <= m.sd.NumEdges(); step++ {
		y := e
		for i := 0; i < step%3; i++ {
			y = y.Lnext()
		}

		var next Edge
		for i := 0; i < 3; i++ {
			if rightOf(x, y) {
				next = y
				break
			}
			y = y.Lnext()
		}
		if next.IsNil() {
			return e, arrived
		}
		if Fixed(next) && !crossFixed {
			return next, blocked
		}
		back := next.Sym()
		if !delaunay.IsRealTriangle(back) {
			return next, escaped
		}
		e = back
	}
	internal.Throwf(delaunay.ErrLocateFailure, "walk toward %v did not finish", x)
	return Edge{}, escaped
}
