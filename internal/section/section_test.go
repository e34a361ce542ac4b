package section

import (
	"errors"
	"testing"
)

func TestLoadLifecycle(t *testing.T) {
	s := New()
	if s.State() != Idle {
		t.Fatalf("initial state = %v", s.State())
	}
	gen := s.BeginLoad()
	if s.State() != Loading {
		t.Fatalf("state after BeginLoad = %v", s.State())
	}
	if !s.FinishLoad(gen, nil) {
		t.Fatal("FinishLoad rejected current generation")
	}
	if s.State() != Loaded {
		t.Fatalf("state after FinishLoad = %v", s.State())
	}
}

func TestStaleLoadDiscarded(t *testing.T) {
	s := New()
	old := s.BeginLoad()
	newer := s.BeginLoad()
	if s.FinishLoad(old, nil) {
		t.Fatal("stale generation was accepted")
	}
	if s.State() != Loading {
		t.Fatalf("stale finish changed state to %v", s.State())
	}
	if !s.FinishLoad(newer, nil) {
		t.Fatal("current generation was rejected")
	}
	if s.State() != Loaded {
		t.Fatalf("state = %v, want Loaded", s.State())
	}
}

func TestLoadError(t *testing.T) {
	s := New()
	gen := s.BeginLoad()
	boom := errors.New("backend down")
	s.FinishLoad(gen, boom)
	if s.State() != LoadError {
		t.Fatalf("state = %v, want LoadError", s.State())
	}
	if s.Err() != boom {
		t.Fatalf("err = %v", s.Err())
	}
}

func TestMutationErrorKeepsLastErr(t *testing.T) {
	s := New()
	gen := s.BeginLoad()
	s.FinishLoad(gen, nil)

	s.BeginMutate()
	if s.State() != Mutating {
		t.Fatalf("state = %v, want Mutating", s.State())
	}
	boom := errors.New("write failed")
	s.FinishMutate(boom)
	if s.State() != MutationError {
		t.Fatalf("state = %v, want MutationError", s.State())
	}
	if s.Err() != boom {
		t.Fatalf("err = %v", s.Err())
	}

	s.BeginMutate()
	s.FinishMutate(nil)
	if s.State() != Loaded || s.Err() != nil {
		t.Fatalf("recovery wrong: state=%v err=%v", s.State(), s.Err())
	}
}
