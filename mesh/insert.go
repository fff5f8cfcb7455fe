package mesh

import (
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	"github.com/osuushi/quadmesh/predicates"
	. "github.com/osuushi/quadmesh/subdivision"
)

type SiteResult int

const (
	SiteInserted SiteResult = iota
	SiteDuplicate
	// The point is outside the domain.
	SiteRejected
	// The point landed on or encroached a fixed edge, which was split
	// instead.
	SiteSplit
)

func (r SiteResult) String() string {
	switch r {
	case SiteInserted:
		return "inserted"
	case SiteDuplicate:
		return "duplicate"
	case SiteRejected:
		return "rejected"
	case SiteSplit:
		return "split"
	}
	return "unknown"
}

// InsertMeshSite adds a Steiner point at p, walking from hint to find it.
// Points outside the domain are rejected. A point on a fixed edge, or inside
// the diametral circle of a fixed edge it can see, splits those edges instead.
// Otherwise p is inserted, the mesh is made locally Delaunay around it, and
// the new vertex is returned.
//
// For SiteSplit, the vertex is the midpoint of the last edge split. For
// SiteDuplicate, it is the existing vertex at p.
func (m *Mesh) InsertMeshSite(p geom.Point, hint Edge) (result SiteResult, v *Vertex, err error) {
	defer internal.Recover(&err)
	result, v = m.insertMeshSite(p, hint)
	return result, v, nil
}

func (m *Mesh) insertMeshSite(p geom.Point, hint Edge) (SiteResult, *Vertex) {
	start := m.startEdge(hint)
	if start.IsNil() {
		return SiteRejected, nil
	}
	e, stop := m.walk(start, p, false)
	switch stop {
	case escaped:
		return SiteRejected, nil
	case blocked:
		if !m.Contains(p) {
			return SiteRejected, nil
		}
		return SiteSplit, m.SplitSegment(e)
	}
	return m.insertAt(e, p, true)
}

// Inserts p, which lies in the closed triangle left of e.
func (m *Mesh) insertAt(e Edge, p geom.Point, checkEncroachment bool) (SiteResult, *Vertex) {
	if !m.isInsideTriangle(Left(e)) {
		return SiteRejected, nil
	}

	var on Edge
	for _, y := range e.LeftLoop() {
		if Org(y).Point == p {
			return SiteDuplicate, Org(y)
		}
		if delaunay.OnEdge(p, y) {
			on = y
		}
	}
	if !on.IsNil() && Fixed(on) {
		return SiteSplit, m.SplitSegment(on)
	}

	if checkEncroachment {
		var v *Vertex
		for _, s := range m.encroachedBy(e, p) {
			// An earlier split may have cured it
			if Encroaches(s, p) {
				v = m.SplitSegment(s)
			}
		}
		if v != nil {
			return SiteSplit, v
		}
	}

	var v *Vertex
	if on.IsNil() {
		v = Org(m.sd.InsertInFace(e, p))
	} else {
		v = delaunay.SplitEdge(m.sd, on, p)
	}
	v.Steiner = true
	delaunay.Legalize(m.sd, v)
	m.hint = v.Leaves()
	return SiteInserted, v
}

// Finds the fixed edges that p would encroach once inserted. These are the
// fixed edges around the cavity of triangles whose circumcircles contain p,
// which is the region p's insertion would retriangulate.
func (m *Mesh) encroachedBy(e Edge, p geom.Point) []Edge {
	seen := map[*Face]bool{Left(e): true}
	found := map[Edge]bool{}
	var result []Edge

	var stack EdgeStack
	for _, y := range e.LeftLoop() {
		stack.Push(y)
	}
	for !stack.Empty() {
		y := stack.Pop()
		if Fixed(y) {
			if canonical := y.Canonical(); !found[canonical] && Encroaches(y, p) {
				found[canonical] = true
				result = append(result, y)
			}
			continue
		}
		back := y.Sym()
		f := Left(back)
		if seen[f] || !m.isInsideTriangle(f) {
			continue
		}
		if predicates.InCircle(Org(back).Point, Dest(back).Point, Dest(back.Lnext()).Point, p) <= 0 {
			continue
		}
		seen[f] = true
		stack.Push(back.Lnext())
		stack.Push(back.Lnext().Lnext())
	}
	return result
}

// DeleteSite removes a Steiner vertex. Its faces are joined into one polygon,
// the vertex is dropped, and the polygon is retriangulated the same way
// constrained edge insertion fills the holes it leaves.
func (m *Mesh) DeleteSite(v *Vertex) (err error) {
	defer internal.Recover(&err)
	if !v.Alive() || !v.Steiner {
		internal.Throwf(ErrPrecondViolation, "%v is not a removable vertex", v)
	}
	spokes := v.Leaves().Orbit()
	for _, s := range spokes {
		if Fixed(s) {
			internal.Throwf(ErrPrecondViolation, "%v lies on a fixed edge", v)
		}
		if !delaunay.IsRealTriangle(s) || Left(s) == m.sd.OuterFace {
			internal.Throwf(ErrPrecondViolation, "%v is not surrounded by triangles", v)
		}
	}

	for _, s := range spokes[1:] {
		m.sd.JoinFace(s)
	}
	last := spokes[0]
	f := Left(last)
	m.sd.JoinVertex(last.Sym())

	delaunay.TriangulatePseudoPolygon(f.Bounds(), delaunay.FaceLinker(m.sd))
	m.hint = f.Bounds()
	m.log.Debug("deleted steiner point", "at", v.Point)
	return nil
}

// Removes every Steiner vertex in the diametral circle of e. Returns the
// number removed.
func (m *Mesh) deleteSteinersNear(e Edge) int {
	count := 0
	for _, v := range m.sd.Vertices() {
		if v.Steiner && Encroaches(e, v.Point) && m.DeleteSite(v) == nil {
			count++
		}
	}
	return count
}
