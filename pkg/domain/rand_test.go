package domain

// seqRand replays a fixed sequence of draws, reduced modulo n.
type seqRand struct {
	vals []int
	next int
}

func (s *seqRand) IntN(n int) int {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v % n
}

// rawRand returns v unchanged regardless of n.
type rawRand struct{ v int }

func (r rawRand) IntN(int) int { return r.v }
