// Package section tracks a dashboard section's view state. Each section
// moves Idle → Loading → Loaded (or LoadError) on loads, and Loaded →
// Mutating → Loaded (or MutationError) on writes. A mutation error keeps the
// last good rows; only the state marker changes.
package section

import "sync"

type State int

const (
	Idle State = iota
	Loading
	Loaded
	LoadError
	Mutating
	MutationError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case LoadError:
		return "load_error"
	case Mutating:
		return "mutating"
	case MutationError:
		return "mutation_error"
	}
	return "unknown"
}

type Section struct {
	mu      sync.Mutex
	state   State
	gen     uint64
	lastErr error
}

func New() *Section {
	return &Section{state: Idle}
}

// BeginLoad marks the section Loading and returns a generation token. Each
// new load invalidates the tokens of loads still in flight, so a stale
// response cannot overwrite a newer one.
func (s *Section) BeginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = Loading
	s.lastErr = nil
	return s.gen
}

// FinishLoad settles a load. It returns false when the token is stale, in
// which case the caller must discard its result and leave the cache alone.
func (s *Section) FinishLoad(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	if err != nil {
		s.state = LoadError
		s.lastErr = err
	} else {
		s.state = Loaded
	}
	return true
}

// BeginMutate marks the section Mutating. Overlapping mutations are not
// serialized here; the last writer wins, matching the store's semantics.
func (s *Section) BeginMutate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Mutating
	s.lastErr = nil
}

// FinishMutate settles a mutation. On error the previous rows stay rendered.
func (s *Section) FinishMutate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = MutationError
		s.lastErr = err
		return
	}
	s.state = Loaded
}

func (s *Section) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Section) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
