package resolver

import (
	"context"
	"sync/atomic"
	"testing"

	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

func TestLookupMissingResolvesToNil(t *testing.T) {
	r := New(store.NewMem())
	ctx := context.Background()

	if got := r.Driver(ctx, "no-such-id"); got != nil {
		t.Fatalf("missing driver = %+v, want nil", got)
	}
	if got := r.Address(ctx, ""); got != nil {
		t.Fatalf("empty id = %+v, want nil", got)
	}
}

func TestLookupFound(t *testing.T) {
	s := store.NewMem()
	ctx := context.Background()
	id, err := s.Add(ctx, store.Drivers, models.Driver{CompanyID: "c1", Name: "Ali"})
	if err != nil {
		t.Fatalf("seed error: %v", err)
	}
	r := New(s)
	got := r.Driver(ctx, id)
	if got == nil || got.Name != "Ali" {
		t.Fatalf("driver = %+v", got)
	}
}

func TestJoinWaitsForAll(t *testing.T) {
	var n int32
	fns := make([]func(), 20)
	for i := range fns {
		fns[i] = func() { atomic.AddInt32(&n, 1) }
	}
	Join(fns...)
	if n != 20 {
		t.Fatalf("ran %d fns, want 20", n)
	}
	Join() // no-op
}
