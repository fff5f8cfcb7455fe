package quadedge

// A Store owns a set of records. The zero value is not usable; call NewStore.
type Store[T any] struct {
	head *Record[T]
	n    int
}

func NewStore[T any]() *Store[T] {
	head := &Record[T]{}
	head.prev = head
	head.next = head
	return &Store[T]{head: head}
}

// MakeEdge creates a detached edge. Its primal stubs are each their own Onext
// ring, and the two dual stubs form one ring of size two, as for an edge that
// has distinct endpoints and a single face on both sides.
func (s *Store[T]) MakeEdge() Edge[T] {
	q := &Record[T]{}
	q.stubs[0].next = Edge[T]{q, 0}
	q.stubs[1].next = Edge[T]{q, 3}
	q.stubs[2].next = Edge[T]{q, 2}
	q.stubs[3].next = Edge[T]{q, 1}

	// Insert before the sentinel, so iteration yields records in creation order
	last := s.head.prev
	q.prev = last
	q.next = s.head
	last.next = q
	s.head.prev = q
	s.n++

	return Edge[T]{q, 0}
}

// DeleteEdge disconnects e from the rest of the structure and frees its
// record. It does no semantic checking; callers must first repair any
// references held in payloads.
func (s *Store[T]) DeleteEdge(e Edge[T]) {
	Splice(e, e.Oprev())
	Splice(e.Sym(), e.Sym().Oprev())
	s.unlink(e.q)
}

func (s *Store[T]) unlink(q *Record[T]) {
	if q.dead {
		return
	}
	q.prev.next = q.next
	q.next.prev = q.prev
	q.prev = nil
	q.next = nil
	q.dead = true
	s.n--
}

// Merge moves every record of other into s in O(1). other is left empty.
func (s *Store[T]) Merge(other *Store[T]) {
	if other == s || other.n == 0 {
		return
	}
	first, last := other.head.next, other.head.prev
	tail := s.head.prev

	tail.next = first
	first.prev = tail
	last.next = s.head
	s.head.prev = last
	s.n += other.n

	other.head.next = other.head
	other.head.prev = other.head
	other.n = 0
}

func (s *Store[T]) Len() int {
	return s.n
}

// First returns stub 0 of the oldest live record, or the nil edge.
func (s *Store[T]) First() Edge[T] {
	if s.n == 0 {
		return Edge[T]{}
	}
	return Edge[T]{s.head.next, 0}
}

// Edges returns stub 0 of every live record. The result is a snapshot, so the
// caller may edit the store while ranging over it.
func (s *Store[T]) Edges() []Edge[T] {
	result := make([]Edge[T], 0, s.n)
	for q := s.head.next; q != s.head; q = q.next {
		result = append(result, Edge[T]{q, 0})
	}
	return result
}
