package id

import "sync/atomic"

// Sequence hands out increasing int64 ids, the way a BIGSERIAL column does.
// The zero value starts at 1.
type Sequence struct {
	last atomic.Int64
}

func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.Observe(start)
	return s
}

func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Observe moves the sequence past an id that was assigned elsewhere.
func (s *Sequence) Observe(value int64) {
	for {
		current := s.last.Load()
		if value <= current || s.last.CompareAndSwap(current, value) {
			return
		}
	}
}

func (s *Sequence) Current() int64 {
	return s.last.Load()
}
