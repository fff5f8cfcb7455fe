package quadedge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeEdge(t *testing.T) {
	s := NewStore[int]()
	e := s.MakeEdge()

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, e, e.Onext())
	assert.Equal(t, e.Sym(), e.Sym().Onext())
	assert.Equal(t, e.InvRot(), e.Rot().Onext())
	assert.Equal(t, e.Rot(), e.InvRot().Onext())

	// A lone edge bounds a single face, walking out along e and back along e.Sym
	assert.Equal(t, e.Sym(), e.Lnext())
	assert.Equal(t, e, e.Sym().Lnext())
}

func TestAlgebra(t *testing.T) {
	s := NewStore[int]()
	a := s.MakeEdge()
	b := s.MakeEdge()
	c := s.MakeEdge()
	// Build a triangle so that navigation has something nontrivial to do
	Splice(a.Sym(), b)
	Splice(b.Sym(), c)
	Splice(c.Sym(), a)

	for _, e := range []Edge[int]{a, b, c, a.Sym(), b.Rot(), c.InvRot()} {
		assert.Equal(t, e, e.Rot().Rot().Rot().Rot(), "rot has order 4")
		assert.Equal(t, e.Sym(), e.Rot().Rot())
		assert.Equal(t, e.InvRot(), e.Rot().Sym())
		assert.Equal(t, e, e.Onext().Oprev())
		assert.Equal(t, e, e.Lnext().Lprev())
		assert.Equal(t, e, e.Rnext().Rprev())
		assert.Equal(t, e, e.Dnext().Dprev())
		assert.Equal(t, e, e.Rot().Onext().Rot().Onext(), "Rot Onext Rot Onext is the identity")
		assert.NotEqual(t, e, e.Rot())
	}

	assert.Equal(t, b, a.Lnext())
	assert.Equal(t, c, b.Lnext())
	assert.Equal(t, a, c.Lnext())
	assert.Len(t, a.LeftLoop(), 3)
	assert.Len(t, a.Sym().LeftLoop(), 3)
	assert.Len(t, a.Orbit(), 2)
}

func TestSpliceIsSelfInverse(t *testing.T) {
	s := NewStore[int]()
	a := s.MakeEdge()
	b := s.MakeEdge()
	c := s.MakeEdge()
	Splice(a, b)

	snapshot := func() map[Edge[int]]Edge[int] {
		result := map[Edge[int]]Edge[int]{}
		for _, e := range s.Edges() {
			for i := 0; i < 4; i++ {
				result[e] = e.Onext()
				e = e.Rot()
			}
		}
		return result
	}

	same := func(x, y map[Edge[int]]Edge[int]) bool {
		if len(x) != len(y) {
			return false
		}
		for k, v := range x {
			if y[k] != v {
				return false
			}
		}
		return true
	}

	before := snapshot()
	Splice(a, c)
	assert.False(t, same(before, snapshot()))
	Splice(a, c)
	assert.True(t, same(before, snapshot()))

	Splice(a, b)
	assert.Equal(t, a, a.Onext())
	assert.Equal(t, b, b.Onext())
}

func TestDeleteEdge(t *testing.T) {
	s := NewStore[string]()
	a := s.MakeEdge()
	b := s.MakeEdge()
	Splice(a.Sym(), b)
	*a.Data() = "keep"

	s.DeleteEdge(b)
	assert.Equal(t, 1, s.Len())
	assert.False(t, b.Record().Alive())
	assert.True(t, a.Record().Alive())
	assert.Equal(t, a.Sym(), a.Sym().Onext())
	assert.Equal(t, "keep", *a.Data())
	assert.Equal(t, []Edge[string]{a}, s.Edges())
}

func TestMerge(t *testing.T) {
	left := NewStore[int]()
	right := NewStore[int]()
	a := left.MakeEdge()
	b := right.MakeEdge()
	c := right.MakeEdge()

	left.Merge(right)
	require.Equal(t, 3, left.Len())
	assert.Equal(t, 0, right.Len())
	assert.Equal(t, []Edge[int]{a, b, c}, left.Edges())
	assert.Equal(t, a, left.First())
	assert.True(t, right.First().IsNil())

	// Deleting after a merge must maintain the ring
	left.DeleteEdge(b)
	assert.Equal(t, []Edge[int]{a, c}, left.Edges())

	// The emptied store is reusable
	d := right.MakeEdge()
	assert.Equal(t, []Edge[int]{d}, right.Edges())
}

func TestCanonical(t *testing.T) {
	s := NewStore[int]()
	base := s.MakeEdge()
	e := base
	for i := 0; i < 4; i++ {
		assert.Equal(t, e, e.Rot().Rot().Rot().Rot())
		assert.Equal(t, base, e.Canonical())
		assert.Equal(t, 0, e.Canonical().Index())
		assert.Equal(t, i, e.Index())
		assert.Equal(t, i%2 == 0, e.IsPrimal())
		e = e.Rot()
	}
}
