package coach

import "sync"

// memoKey identifies an evaluation by what actually drives the outcome:
// the consumed calories and the calorie target.
type memoKey struct {
	consumedKcal float64
	targetKcal   float64
}

// profileState serializes bookkeeping for one profile. Each evaluation
// bumps the generation; an evaluation that was overtaken by a newer one
// still returns its result but never memoizes it.
type profileState struct {
	mu         sync.Mutex
	generation uint64
	memo       map[memoKey]*Result
}

func newProfileState() *profileState {
	return &profileState{memo: make(map[memoKey]*Result)}
}

// begin starts a new evaluation and returns its generation.
func (s *profileState) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *profileState) lookup(key memoKey) (*Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.memo[key]
	return r, ok
}

// commit memoizes the result unless the evaluation was superseded.
// It reports whether the result was stored.
func (s *profileState) commit(gen uint64, key memoKey, r *Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}

	// The memo tracks a single day of interactions; keep it bounded.
	if len(s.memo) >= 64 {
		s.memo = make(map[memoKey]*Result)
	}

	s.memo[key] = r
	return true
}
