package subdivision

type EdgeStack []Edge

func (s *EdgeStack) Push(e Edge) {
	*s = append(*s, e)
}

func (s *EdgeStack) Pop() Edge {
	if len(*s) == 0 {
		return Edge{}
	}
	e := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return e
}

func (s *EdgeStack) Empty() bool {
	return len(*s) == 0
}
