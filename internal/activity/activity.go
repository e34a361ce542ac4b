// Package activity appends audit records after every mutation. Appends are
// best-effort and non-blocking: a single writer goroutine drains a buffered
// channel so records land in mutation order, and store failures are only
// logged, never surfaced to the caller.
package activity

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

type Logger struct {
	store  store.Store
	ch     chan models.ActivityLog
	done   chan struct{}
	notify func(models.ActivityLog)
}

func New(s store.Store) *Logger {
	l := &Logger{
		store: s,
		ch:    make(chan models.ActivityLog, 256),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// OnAppend registers a hook invoked after each record is written, used to
// fan events out to the websocket hub. Set before any Append.
func (l *Logger) OnAppend(fn func(models.ActivityLog)) {
	l.notify = fn
}

// Append queues one audit record. It never blocks: when the buffer is full
// the record is dropped with a warning.
func (l *Logger) Append(companyID, action, entityType, entityID string) {
	rec := models.ActivityLog{
		CompanyID:  companyID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		CreatedAt:  time.Now(),
	}
	select {
	case l.ch <- rec:
	default:
		logrus.Warnf("activity: buffer full, dropping %s %s/%s", action, entityType, entityID)
	}
}

// Close stops the writer after draining queued records.
func (l *Logger) Close() {
	close(l.ch)
	<-l.done
}

func (l *Logger) run() {
	defer close(l.done)
	for rec := range l.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := l.store.Add(ctx, store.ActivityLogs, rec)
		cancel()
		if err != nil {
			logrus.Warnf("activity: append failed: %v", err)
			continue
		}
		if l.notify != nil {
			l.notify(rec)
		}
	}
}
