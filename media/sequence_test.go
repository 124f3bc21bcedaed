package media

import (
	"sync"
	"testing"
)

func TestSequence(t *testing.T) {
	s := NewSequence()
	if got := s.Peek(); got != 1 {
		t.Errorf("Peek() = %d, want 1", got)
	}
	for want := 1; want <= 3; want++ {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
	if got := s.Peek(); got != 4 {
		t.Errorf("Peek() = %d, want 4", got)
	}

	var zero Sequence
	if got := zero.Next(); got != 1 {
		t.Errorf("zero Sequence Next() = %d, want 1", got)
	}
}

func TestSequence_Concurrent(t *testing.T) {
	s := NewSequence()
	const workers, per = 8, 200

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				n := s.Next()
				mu.Lock()
				if seen[n] {
					t.Errorf("number %d handed out twice", n)
				}
				seen[n] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*per {
		t.Errorf("got %d distinct numbers, want %d", len(seen), workers*per)
	}
}
