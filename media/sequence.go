package media

import "sync"

// Sequence is a counter shared by all documents of a batch run. It is safe
// for concurrent use.
type Sequence struct {
	mu   sync.Mutex
	next int
}

// NewSequence returns a sequence whose first number is 1.
func NewSequence() *Sequence {
	return &Sequence{next: 1}
}

// Next returns the next number and advances the sequence.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next < 1 {
		s.next = 1
	}
	n := s.next
	s.next++
	return n
}

// Peek returns the number Next would return, without advancing.
func (s *Sequence) Peek() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next < 1 {
		return 1
	}
	return s.next
}
