package mesh

import (
	"github.com/osuushi/quadmesh/internal"
	. "github.com/osuushi/quadmesh/subdivision"
)

// InitFaces throws away any existing faces and gives every face loop of the
// subdivision a fresh, unclassified face.
func InitFaces(sd *Subdivision) {
	sd.ClearFaces()
	for _, e := range sd.Edges() {
		for _, x := range [2]Edge{e, e.Sym()} {
			if Left(x) != nil {
				continue
			}
			f := sd.AddFace(Unclassified)
			for _, y := range x.LeftLoop() {
				SetLeft(y, f)
			}
			SetFaceBounds(f, x)
		}
	}
}

// MarkOuterFaces classifies every face by the even-odd rule. The face left of
// outerEdge is the unbounded face, which is outside, and crossing a boundary
// edge flips between outside and inside. Faces are visited breadth first.
func MarkOuterFaces(sd *Subdivision, outerEdge Edge) {
	outer := Left(outerEdge)
	if outer == nil {
		internal.Throwf(ErrPrecondViolation, "faces must be initialized before classification")
	}
	for _, f := range sd.Faces() {
		f.Mark = Unclassified
	}
	outer.Mark = Outside
	sd.OuterFace = outer

	queue := []*Face{outer}
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		for _, e := range f.Bounds().LeftLoop() {
			g := Right(e)
			if g.Mark != Unclassified {
				continue
			}
			g.Mark = f.Mark
			if Boundary(e) {
				g.Mark = Inside - f.Mark
			}
			queue = append(queue, g)
		}
	}
}
