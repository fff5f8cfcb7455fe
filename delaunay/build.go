// Package delaunay builds and edits Delaunay triangulations on top of a
// subdivision: divide and conquer construction, point location, incremental
// site insertion, and constrained edge insertion.
package delaunay

import (
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
	"github.com/pkg/errors"
)

// Build computes the Delaunay triangulation of points by divide and conquer.
// The points must be sorted by geom.Less and contain no duplicates.
//
// Besides the subdivision, it returns the counterclockwise convex hull edge
// leaving the leftmost point, and the clockwise convex hull edge leaving the
// rightmost point. The unbounded face lies to the right of the first.
func Build(points []geom.Point) (sd *Subdivision, le, re Edge, err error) {
	if len(points) < 2 {
		return nil, Edge{}, Edge{}, errors.Wrapf(ErrTooFewPoints, "got %d", len(points))
	}
	sd, le, re = build(points)
	return sd, le, re, nil
}

// Triangulate sorts and deduplicates a copy of points, then calls Build.
func Triangulate(points []geom.Point) (*Subdivision, Edge, error) {
	sd, le, _, err := Build(geom.SortedUnique(points))
	return sd, le, err
}

func build(points []geom.Point) (*Subdivision, Edge, Edge) {
	switch len(points) {
	case 2:
		sd, e := NewSegment(points[0], points[1])
		return sd, e, e.Sym()
	case 3:
		sd, a := NewSegment(points[0], points[1])
		b := sd.AddVertex(a, points[2])
		orientation := predicates.Orient2D(points[0], points[1], points[2])
		switch {
		case orientation > 0:
			sd.Connect(b, a)
			return sd, a, b.Sym()
		case orientation < 0:
			c := sd.Connect(b, a)
			return sd, c.Sym(), c
		}
		// Collinear, so the chain is its own hull
		return sd, a, b.Sym()
	}

	mid := len(points) / 2
	sd, ldo, ldi := build(points[:mid])
	right, rdi, rdo := build(points[mid:])
	sd.Merge(right)

	// Lower common tangent of the two hulls
	for {
		if leftOf(Org(rdi).Point, ldi) {
			ldi = ldi.Lnext()
		} else if rightOf(Org(ldi).Point, rdi) {
			rdi = rdi.Rprev()
		} else {
			break
		}
	}

	basel := sd.Connect(rdi.Sym(), ldi)
	if Org(ldi) == Org(ldo) {
		ldo = basel.Sym()
	}
	if Org(rdi) == Org(rdo) {
		rdo = basel
	}

	valid := func(e Edge) bool {
		return rightOf(Dest(e).Point, basel)
	}

	// Zip the halves together bottom to top. Each round picks the next cross
	// edge from the candidates on either side, after deleting the edges the
	// new cross edge would invalidate.
	for {
		lcand := basel.Sym().Onext()
		if valid(lcand) {
			for inCircle(Dest(basel), Org(basel), Dest(lcand), Dest(lcand.Onext())) {
				next := lcand.Onext()
				sd.DeleteEdge(lcand)
				lcand = next
			}
		}

		rcand := basel.Oprev()
		if valid(rcand) {
			for inCircle(Dest(basel), Org(basel), Dest(rcand), Dest(rcand.Oprev())) {
				next := rcand.Oprev()
				sd.DeleteEdge(rcand)
				rcand = next
			}
		}

		lvalid, rvalid := valid(lcand), valid(rcand)
		if !lvalid && !rvalid {
			break
		}

		if !lvalid || (rvalid && inCircle(Dest(lcand), Org(lcand), Org(rcand), Dest(rcand))) {
			basel = sd.Connect(rcand, basel.Sym())
		} else {
			basel = sd.Connect(basel.Sym(), lcand.Sym())
		}
	}

	return sd, ldo, rdo
}
