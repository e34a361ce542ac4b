package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/resolver"
	"bus-company-admin-api/internal/section"
	"bus-company-admin-api/internal/store"
	"bus-company-admin-api/internal/viewcache"
)

type NotificationRow struct {
	models.Notification
	Passenger *models.Passenger `json:"passenger"`
}

type NotificationInput struct {
	To      string `json:"to"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NotificationSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[NotificationRow]
}

func NewNotificationSection(deps Deps, companyID string) *NotificationSection {
	return &NotificationSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r NotificationRow) string { return r.ID }),
	}
}

func (s *NotificationSection) State() section.State { return s.state.State() }

// Load lists the company's sent notifications, newest first.
func (s *NotificationSection) Load(ctx context.Context) ([]NotificationRow, error) {
	gen := s.state.BeginLoad()
	var notifs []models.Notification
	if err := s.deps.Store.QuerySort(ctx, store.Notifications, bson.M{"from": s.companyID}, "-sentAt", &notifs); err != nil {
		werr := backendErr("load notifications", err)
		s.state.FinishLoad(gen, werr)
		return nil, werr
	}
	rows := make([]NotificationRow, len(notifs))
	fns := make([]func(), len(notifs))
	for i := range notifs {
		i := i
		fns[i] = func() {
			n := notifs[i]
			rows[i] = NotificationRow{
				Notification: n,
				Passenger:    s.deps.Resolver.Passenger(ctx, n.To),
			}
		}
	}
	resolver.Join(fns...)
	if !s.state.FinishLoad(gen, nil) {
		return rows, nil
	}
	s.cache.Set(rows)
	return rows, nil
}

// Rows searches title and content; filter is "read" or "unread".
func (s *NotificationSection) Rows(ctx context.Context, search, filter string) ([]NotificationRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r NotificationRow) bool {
		passengerName := ""
		if r.Passenger != nil {
			passengerName = r.Passenger.Name
		}
		if !viewcache.ContainsFold(search, r.Title, r.Content, passengerName) {
			return false
		}
		switch filter {
		case "read":
			return r.IsRead
		case "unread":
			return !r.IsRead
		}
		return true
	}), nil
}

// Send creates a notification targeted at a passenger, then reloads.
func (s *NotificationSection) Send(ctx context.Context, in NotificationInput) (string, error) {
	if err := required("to", in.To); err != nil {
		return "", err
	}
	if err := required("title", in.Title); err != nil {
		return "", err
	}
	if err := required("content", in.Content); err != nil {
		return "", err
	}
	var passenger models.Passenger
	found, err := s.deps.Store.Get(ctx, store.Passengers, in.To, &passenger)
	if err != nil {
		return "", backendErr("load passenger", err)
	}
	if !found {
		return "", domain.NotFoundError{Resource: "passenger"}
	}
	n := models.Notification{
		From:    s.companyID,
		To:      in.To,
		Title:   in.Title,
		Content: in.Content,
		SentAt:  time.Now(),
	}
	s.state.BeginMutate()
	id, err := s.deps.Store.Add(ctx, store.Notifications, n)
	if err != nil {
		err = backendErr("send notification", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return "", err
	}
	s.deps.Activity.Append(s.companyID, "create", "notification", id)
	s.reload(ctx)
	return id, nil
}

// MarkRead flips the read flag with a single-field update and patches the
// cache in place.
func (s *NotificationSection) MarkRead(ctx context.Context, id string, read bool) error {
	var notif models.Notification
	found, err := s.deps.Store.Get(ctx, store.Notifications, id, &notif)
	if err != nil {
		return backendErr("load notification", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "notification"}
	}
	s.state.BeginMutate()
	err = s.deps.Store.Update(ctx, store.Notifications, id, bson.M{"isRead": read})
	if err != nil {
		err = backendErr("update notification", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "notification", id)
	s.cache.Patch(id, func(r *NotificationRow) { r.IsRead = read })
	return nil
}

func (s *NotificationSection) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		logrus.Warnf("notifications: reload after mutation failed: %v", err)
	}
}
