package subdivision

import (
	"github.com/pkg/errors"
)

// Validate checks the structural invariants: every vertex and face back
// reference lands on a live edge with the right label, every Onext ring around
// a vertex is labelled with that vertex, and, once faces are present, every
// face loop is labelled with its face and Euler's formula holds for the
// connected subdivision. It returns nil or an error wrapping ErrCorrupt.
func (s *Subdivision) Validate() error {
	for _, v := range s.Vertices() {
		if v.leaves.IsNil() || !v.leaves.Record().Alive() {
			return errors.Wrapf(ErrCorrupt, "vertex %v has no live edge", v)
		}
		if Org(v.leaves) != v {
			return errors.Wrapf(ErrCorrupt, "vertex %v points at an edge leaving %v", v, Org(v.leaves))
		}
	}

	edges := s.Edges()
	for _, e := range edges {
		for _, x := range [2]Edge{e, e.Sym()} {
			v := Org(x)
			if v == nil {
				return errors.Wrapf(ErrCorrupt, "edge has no origin")
			}
			if !v.Alive() {
				return errors.Wrapf(ErrCorrupt, "edge leaves removed vertex %v", v)
			}
			for _, y := range x.Orbit() {
				if Org(y) != v {
					return errors.Wrapf(ErrCorrupt, "ring around %v contains an edge leaving %v", v, Org(y))
				}
			}
		}
		if Org(e).Point == Dest(e).Point {
			return errors.Wrapf(ErrCorrupt, "edge %v-%v has zero length", Org(e), Dest(e))
		}
	}

	if s.nFaces == 0 {
		return nil
	}

	for _, f := range s.Faces() {
		if f.bounds.IsNil() || !f.bounds.Record().Alive() {
			return errors.Wrapf(ErrCorrupt, "face %v has no live edge", f)
		}
		for _, x := range f.bounds.LeftLoop() {
			if Left(x) != f {
				return errors.Wrapf(ErrCorrupt, "loop of face %v contains an edge bordering %v", f, Left(x))
			}
		}
	}
	for _, e := range edges {
		if !Left(e).Alive() || !Right(e).Alive() {
			return errors.Wrapf(ErrCorrupt, "edge %v-%v borders a missing face", Org(e), Dest(e))
		}
	}
	if s.OuterFace != nil && !s.OuterFace.Alive() {
		return errors.Wrapf(ErrCorrupt, "outer face was removed")
	}

	if euler := s.nVertices - len(edges) + s.nFaces; euler != 2 {
		return errors.Wrapf(ErrCorrupt, "V - E + F = %d - %d + %d = %d", s.nVertices, len(edges), s.nFaces, euler)
	}
	return nil
}
