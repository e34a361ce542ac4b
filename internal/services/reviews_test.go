package services

import (
	"context"
	"testing"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

func TestReviewReplyPatchesCache(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	passengerID := seedPassenger(t, st, "omar")
	id, err := st.Add(ctx, store.Reviews, models.Review{
		CompanyID:   "c1",
		PassengerID: passengerID,
		Comment:     "great trip",
		Rate:        5,
	})
	if err != nil {
		t.Fatalf("seed review: %v", err)
	}

	s := NewReviewSection(deps, "c1")
	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := s.Reply(ctx, id, "thank you!"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	var review models.Review
	if _, err := st.Get(ctx, store.Reviews, id, &review); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !review.Replied || review.Reply != "thank you!" || review.ReplyDate.IsZero() {
		t.Fatalf("stored review = %+v", review)
	}

	rows, _ := s.Rows(ctx, "", "")
	if len(rows) != 1 || !rows[0].Replied || rows[0].Reply != "thank you!" {
		t.Fatalf("cache not patched: %+v", rows)
	}
}

func TestReviewReplyValidation(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewReviewSection(deps, "c1")
	ctx := context.Background()

	if err := s.Reply(ctx, "any", "  "); !domain.IsValidation(err) {
		t.Fatalf("blank reply: err = %v", err)
	}
	if err := s.Reply(ctx, "missing", "hello"); !domain.IsNotFound(err) {
		t.Fatalf("missing review: err = %v", err)
	}
}

func TestReviewRowsRateFilter(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	passengerID := seedPassenger(t, st, "omar")
	st.Add(ctx, store.Reviews, models.Review{CompanyID: "c1", PassengerID: passengerID, Comment: "ok", Rate: 3})
	st.Add(ctx, store.Reviews, models.Review{CompanyID: "c1", PassengerID: passengerID, Comment: "great", Rate: 5})
	st.Add(ctx, store.Reviews, models.Review{CompanyID: "c2", PassengerID: passengerID, Comment: "great", Rate: 5})

	s := NewReviewSection(deps, "c1")
	rows, err := s.Rows(ctx, "", "5")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Comment != "great" {
		t.Fatalf("rate filter = %+v", rows)
	}

	rows, _ = s.Rows(ctx, "omar", "3")
	if len(rows) != 1 || rows[0].Comment != "ok" {
		t.Fatalf("AND semantics = %+v", rows)
	}
}
