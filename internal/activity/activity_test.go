package activity

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

func TestAppendWritesInOrder(t *testing.T) {
	st := store.NewMem()
	l := New(st)

	l.Append("c1", "create", "driver", "d1")
	l.Append("c1", "update", "driver", "d1")
	l.Append("c2", "create", "trip", "t1")
	l.Close()

	var logs []models.ActivityLog
	if err := st.Query(context.Background(), store.ActivityLogs, bson.M{"companyId": "c1"}, &logs); err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("got %d records, want 2", len(logs))
	}
	if logs[0].Action != "create" || logs[1].Action != "update" {
		t.Fatalf("order wrong: %+v", logs)
	}
	if logs[0].CreatedAt.IsZero() {
		t.Fatal("createdAt not stamped")
	}
}

func TestOnAppendHookFires(t *testing.T) {
	st := store.NewMem()
	l := New(st)

	var seen []models.ActivityLog
	l.OnAppend(func(rec models.ActivityLog) { seen = append(seen, rec) })

	l.Append("c1", "delete", "bus", "b1")
	l.Close()

	if len(seen) != 1 || seen[0].EntityID != "b1" {
		t.Fatalf("hook saw %+v", seen)
	}
}
