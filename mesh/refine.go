package mesh

import (
	"github.com/osuushi/quadmesh/geom"
	"github.com/osuushi/quadmesh/internal"
	. "github.com/osuushi/quadmesh/subdivision"
)

// Stats describe a refinement run. Complete is false when the iteration budget
// ran out before every inside triangle met the bounds.
type Stats struct {
	Complete   bool
	Iterations int
	Inserted   int
	Splits     int
	Deleted    int
	// Points that could not be placed where the algorithm wanted them, and
	// went to the triangle's centroid instead.
	Fallbacks int
}

func (s *Stats) record(result SiteResult) {
	switch result {
	case SiteInserted:
		s.Inserted++
	case SiteSplit:
		s.Splits++
	}
}

// Refine runs the algorithm chosen by the options.
func (m *Mesh) Refine() (Stats, error) {
	if m.opts.Algorithm == Chew {
		return m.RefineChew()
	}
	return m.RefineRuppert()
}

// EliminateBadTriangle asks for the circumcenter of f to be inserted.
func (m *Mesh) EliminateBadTriangle(f *Face) (SiteResult, *Vertex, error) {
	return m.InsertMeshSite(geom.CircumCenter(corners(f)), f.Bounds())
}

// EliminateWorstTriangle is EliminateBadTriangle on the result of FindWorst.
func (m *Mesh) EliminateWorstTriangle() (SiteResult, *Vertex, error) {
	f, _ := m.FindWorst()
	if f == nil {
		return SiteRejected, nil, nil
	}
	return m.EliminateBadTriangle(f)
}

// RefineRuppert runs Ruppert's algorithm. Encroached fixed edges are split
// first. Then the worst triangle has its circumcenter inserted, unless the
// circumcenter would encroach a fixed edge, in which case the edge is split
// and any new encroachment is cleaned up before continuing. Every split and
// insertion counts against MaxIterations.
func (m *Mesh) RefineRuppert() (stats Stats, err error) {
	defer internal.Recover(&err)
	budget := m.opts.MaxIterations

	splits, complete := m.splitEdges(budget)
	stats.Splits += splits
	stats.Iterations += splits

	for complete && stats.Iterations < budget {
		f := m.nextBad()
		if f == nil {
			stats.Complete = true
			break
		}
		stats.Iterations++

		result, _ := m.insertMeshSite(geom.CircumCenter(corners(f)), f.Bounds())
		if result == SiteRejected || result == SiteDuplicate {
			result = m.insertCentroid(f, true)
			stats.Fallbacks++
		}
		stats.record(result)

		if result == SiteSplit {
			splits, complete = m.splitEdges(budget - stats.Iterations)
			stats.Splits += splits
			stats.Iterations += splits
		}
	}

	m.log.Debug("ruppert refinement finished",
		"complete", stats.Complete,
		"iterations", stats.Iterations,
		"inserted", stats.Inserted,
		"splits", stats.Splits)
	return stats, nil
}

// RefineChew runs Chew's second algorithm. The worst triangle's circumcenter,
// or its off-center if enabled, is inserted directly. If the walk from the
// triangle to the new point is blocked by a fixed edge, the Steiner points in
// that edge's diametral circle are deleted and the edge is split instead.
func (m *Mesh) RefineChew() (stats Stats, err error) {
	defer internal.Recover(&err)

	for stats.Iterations < m.opts.MaxIterations {
		f := m.nextBad()
		if f == nil {
			stats.Complete = true
			break
		}
		stats.Iterations++

		a, b, c := corners(f)
		target := geom.CircumCenter(a, b, c)
		if m.opts.OffCenter {
			p, q := geom.ShortestEdge(a, b, c)
			target = geom.OffCenter(p, q, target, m.opts.Ratio())
		}

		e, stop := m.walk(f.Bounds(), target, false)
		switch stop {
		case blocked:
			stats.Deleted += m.deleteSteinersNear(e)
			m.SplitSegment(e)
			stats.Splits++
		case escaped:
			stats.record(m.insertCentroid(f, false))
			stats.Fallbacks++
		default:
			result, _ := m.insertAt(e, target, false)
			if result == SiteRejected || result == SiteDuplicate {
				result = m.insertCentroid(f, false)
				stats.Fallbacks++
			}
			stats.record(result)
		}
	}

	m.log.Debug("chew refinement finished",
		"complete", stats.Complete,
		"iterations", stats.Iterations,
		"inserted", stats.Inserted,
		"splits", stats.Splits,
		"deleted", stats.Deleted)
	return stats, nil
}

// The centroid is always strictly inside f, so this makes progress where the
// circumcenter could not be used.
func (m *Mesh) insertCentroid(f *Face, checkEncroachment bool) SiteResult {
	a, b, c := corners(f)
	centroid := a.Add(b).Add(c).Mul(1.0 / 3)
	result, _ := m.insertAt(f.Bounds(), centroid, checkEncroachment)
	return result
}
