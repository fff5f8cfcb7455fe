package mesh

import (
	"github.com/osuushi/quadmesh/delaunay"
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	. "github.com/osuushi/quadmesh/subdivision"
)

// SplitSegment splits the fixed edge e at its midpoint. Both halves stay fixed
// and keep e's boundary flag, the triangles on either side are split in two
// with their marks, and unfixed edges around the new vertex are flipped until
// they are locally Delaunay again. Returns the new vertex.
func (m *Mesh) SplitSegment(e Edge) *Vertex {
	if !Fixed(e) {
		internal.Throwf(ErrPrecondViolation, "%v-%v is not a fixed edge", Org(e), Dest(e))
	}
	mid := geom.Midpoint(Org(e).Point, Dest(e).Point)
	m.log.Debug("splitting segment", "from", Org(e).Point, "to", Dest(e).Point, "boundary", Boundary(e))

	v := delaunay.SplitEdge(m.sd, e, mid)
	delaunay.Legalize(m.sd, v)
	m.hint = v.Leaves()
	return v
}

// Whether an apex of an inside triangle beside e lies in its diametral circle.
func (m *Mesh) isEncroached(e Edge) bool {
	for _, y := range [2]Edge{e, e.Sym()} {
		if m.isInsideTriangle(Left(y)) && Encroaches(e, Dest(y.Lnext()).Point) {
			return true
		}
	}
	return false
}

// SplitEdges splits encroached fixed edges until none are left, or until
// MaxIterations splits have been made. Returns the number of splits and
// whether every fixed edge is free of encroachment.
func (m *Mesh) SplitEdges() (splits int, complete bool, err error) {
	defer internal.Recover(&err)
	splits, complete = m.splitEdges(m.opts.MaxIterations)
	return splits, complete, nil
}

func (m *Mesh) splitEdges(budget int) (splits int, complete bool) {
	for {
		found := false
		for _, e := range m.sd.Edges() {
			if !e.Record().Alive() || !Fixed(e) || !m.isEncroached(e) {
				continue
			}
			if splits >= budget {
				return splits, false
			}
			m.SplitSegment(e)
			splits++
			found = true
		}
		if !found {
			return splits, true
		}
	}
}
