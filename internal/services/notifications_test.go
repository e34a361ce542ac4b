package services

import (
	"context"
	"testing"
	"time"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

func TestNotificationSendRequiresExistingPassenger(t *testing.T) {
	deps, st := newTestDeps(t)
	s := NewNotificationSection(deps, "c1")
	ctx := context.Background()

	in := NotificationInput{To: "ghost", Title: "hi", Content: "hello"}
	if _, err := s.Send(ctx, in); !domain.IsNotFound(err) {
		t.Fatalf("unknown passenger: err = %v", err)
	}

	in.To = seedPassenger(t, st, "omar")
	id, err := s.Send(ctx, in)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	var n models.Notification
	if found, _ := st.Get(ctx, store.Notifications, id, &n); !found {
		t.Fatal("notification not stored")
	}
	if n.From != "c1" || n.IsRead {
		t.Fatalf("notification = %+v", n)
	}
}

func TestNotificationSendValidation(t *testing.T) {
	deps, _ := newTestDeps(t)
	s := NewNotificationSection(deps, "c1")
	ctx := context.Background()

	if _, err := s.Send(ctx, NotificationInput{Title: "hi", Content: "x"}); !domain.IsValidation(err) {
		t.Fatalf("missing to: err = %v", err)
	}
	if _, err := s.Send(ctx, NotificationInput{To: "p1", Content: "x"}); !domain.IsValidation(err) {
		t.Fatalf("missing title: err = %v", err)
	}
}

func TestNotificationLoadNewestFirst(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	passengerID := seedPassenger(t, st, "omar")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		st.Add(ctx, store.Notifications, models.Notification{
			From: "c1", To: passengerID, Title: title, Content: "x",
			SentAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	st.Add(ctx, store.Notifications, models.Notification{From: "c2", To: passengerID, Title: "other", Content: "x", SentAt: base})

	s := NewNotificationSection(deps, "c1")
	rows, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 3 || rows[0].Title != "third" || rows[2].Title != "first" {
		t.Fatalf("order wrong: %+v", rows)
	}
	if rows[0].Passenger == nil || rows[0].Passenger.Name != "omar" {
		t.Fatalf("passenger not resolved: %+v", rows[0].Passenger)
	}
}

func TestNotificationMarkReadAndFilter(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	passengerID := seedPassenger(t, st, "omar")
	id, _ := st.Add(ctx, store.Notifications, models.Notification{From: "c1", To: passengerID, Title: "a", Content: "x"})
	st.Add(ctx, store.Notifications, models.Notification{From: "c1", To: passengerID, Title: "b", Content: "x"})

	s := NewNotificationSection(deps, "c1")
	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.MarkRead(ctx, id, true); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	rows, _ := s.Rows(ctx, "", "read")
	if len(rows) != 1 || rows[0].ID != id {
		t.Fatalf("read filter = %+v", rows)
	}
	rows, _ = s.Rows(ctx, "", "unread")
	if len(rows) != 1 || rows[0].Title != "b" {
		t.Fatalf("unread filter = %+v", rows)
	}

	if err := s.MarkRead(ctx, id, false); err != nil {
		t.Fatalf("mark unread: %v", err)
	}
	rows, _ = s.Rows(ctx, "", "read")
	if len(rows) != 0 {
		t.Fatalf("read filter after unread = %+v", rows)
	}

	if err := s.MarkRead(ctx, "missing", true); !domain.IsNotFound(err) {
		t.Fatalf("missing: err = %v", err)
	}
}
