// Package quadedge implements the Guibas-Stolfi quad-edge structure.
//
// Every undirected edge is a Record holding four directed stubs. Stubs 0 and 2
// are the two directions of the primal edge, stubs 1 and 3 are the two
// directions of its dual. Each stub stores its Onext successor and a payload of
// type T. All navigation is derived from Rot, Sym and Onext, so every traversal
// step is O(1).
//
// Records live in a Store, which keeps them on an intrusive ring so that two
// stores can be merged in O(1).
package quadedge

type stub[T any] struct {
	next Edge[T]
	data T
}

// A Record is one undirected edge together with its dual.
type Record[T any] struct {
	stubs [4]stub[T]

	// Ring links. The sentinel record of a Store is never handed out.
	prev, next *Record[T]
	dead       bool
}

// Alive reports whether the record is still owned by a store.
func (q *Record[T]) Alive() bool {
	return q != nil && !q.dead
}

// An Edge addresses one stub of a record. Two edges are the same stub exactly
// when they compare equal.
type Edge[T any] struct {
	q *Record[T]
	r uint8
}

func (e Edge[T]) IsNil() bool {
	return e.q == nil
}

func (e Edge[T]) Record() *Record[T] {
	return e.q
}

// Index of the stub within its record, 0 through 3.
func (e Edge[T]) Index() int {
	return int(e.r)
}

// IsPrimal reports whether e is a vertex-to-vertex stub (0 or 2).
func (e Edge[T]) IsPrimal() bool {
	return e.r&1 == 0
}

// Canonical is stub 0 of e's record. Per-edge attributes hang off this stub.
func (e Edge[T]) Canonical() Edge[T] {
	return Edge[T]{e.q, 0}
}

// Data gives direct access to the payload slot of this stub.
func (e Edge[T]) Data() *T {
	return &e.q.stubs[e.r].data
}

func (e Edge[T]) Rot() Edge[T] {
	return Edge[T]{e.q, (e.r + 1) & 3}
}

func (e Edge[T]) Sym() Edge[T] {
	return Edge[T]{e.q, (e.r + 2) & 3}
}

func (e Edge[T]) InvRot() Edge[T] {
	return Edge[T]{e.q, (e.r + 3) & 3}
}

// Onext is the next edge counterclockwise around the origin of e.
func (e Edge[T]) Onext() Edge[T] {
	return e.q.stubs[e.r].next
}

// Oprev is the next edge clockwise around the origin of e.
func (e Edge[T]) Oprev() Edge[T] {
	return e.Rot().Onext().Rot()
}

// Lnext is the next edge counterclockwise around the left face of e.
func (e Edge[T]) Lnext() Edge[T] {
	return e.InvRot().Onext().Rot()
}

func (e Edge[T]) Lprev() Edge[T] {
	return e.Onext().Sym()
}

func (e Edge[T]) Rnext() Edge[T] {
	return e.Rot().Onext().InvRot()
}

func (e Edge[T]) Rprev() Edge[T] {
	return e.Sym().Onext()
}

func (e Edge[T]) Dnext() Edge[T] {
	return e.Sym().Onext().Sym()
}

func (e Edge[T]) Dprev() Edge[T] {
	return e.InvRot().Onext().InvRot()
}

func (e Edge[T]) setNext(n Edge[T]) {
	e.q.stubs[e.r].next = n
}

// Splice is the single topological operator of the structure. If a and b
// share an origin ring it splits that ring in two, otherwise it joins the two
// rings. The dual rings are updated to match. Splice(a, b) is its own inverse.
func Splice[T any](a, b Edge[T]) {
	alpha := a.Onext().Rot()
	beta := b.Onext().Rot()

	aNext, bNext := a.Onext(), b.Onext()
	alphaNext, betaNext := alpha.Onext(), beta.Onext()

	a.setNext(bNext)
	b.setNext(aNext)
	alpha.setNext(betaNext)
	beta.setNext(alphaNext)
}

// Orbit returns the Onext ring starting at e, e first.
func (e Edge[T]) Orbit() []Edge[T] {
	var result []Edge[T]
	cur := e
	for {
		result = append(result, cur)
		cur = cur.Onext()
		if cur == e {
			return result
		}
	}
}

// LeftLoop returns the Lnext ring starting at e, e first.
func (e Edge[T]) LeftLoop() []Edge[T] {
	var result []Edge[T]
	cur := e
	for {
		result = append(result, cur)
		cur = cur.Lnext()
		if cur == e {
			return result
		}
	}
}
