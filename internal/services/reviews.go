package services

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/resolver"
	"bus-company-admin-api/internal/section"
	"bus-company-admin-api/internal/store"
	"bus-company-admin-api/internal/viewcache"
)

type ReviewRow struct {
	models.Review
	Passenger *models.Passenger `json:"passenger"`
	Trip      *models.Trip      `json:"trip"`
}

type ReviewSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[ReviewRow]
}

func NewReviewSection(deps Deps, companyID string) *ReviewSection {
	return &ReviewSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r ReviewRow) string { return r.ID }),
	}
}

func (s *ReviewSection) State() section.State { return s.state.State() }

func (s *ReviewSection) Load(ctx context.Context) ([]ReviewRow, error) {
	gen := s.state.BeginLoad()
	var reviews []models.Review
	if err := s.deps.Store.Query(ctx, store.Reviews, bson.M{"companyId": s.companyID}, &reviews); err != nil {
		werr := backendErr("load reviews", err)
		s.state.FinishLoad(gen, werr)
		return nil, werr
	}
	rows := make([]ReviewRow, len(reviews))
	fns := make([]func(), len(reviews))
	for i := range reviews {
		i := i
		fns[i] = func() {
			r := reviews[i]
			row := ReviewRow{Review: r}
			resolver.Join(
				func() { row.Passenger = s.deps.Resolver.Passenger(ctx, r.PassengerID) },
				func() { row.Trip = s.deps.Resolver.Trip(ctx, r.TripID) },
			)
			rows[i] = row
		}
	}
	resolver.Join(fns...)
	if !s.state.FinishLoad(gen, nil) {
		return rows, nil
	}
	s.cache.Set(rows)
	return rows, nil
}

// Rows searches comment and passenger name; rate filters on the exact star
// value ("1".."5").
func (s *ReviewSection) Rows(ctx context.Context, search, rate string) ([]ReviewRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	wantRate := -1
	if rate != "" {
		if n, err := strconv.Atoi(rate); err == nil {
			wantRate = n
		}
	}
	return s.cache.Select(func(r ReviewRow) bool {
		passengerName := ""
		if r.Passenger != nil {
			passengerName = r.Passenger.Name
		}
		if !viewcache.ContainsFold(search, r.Comment, passengerName) {
			return false
		}
		if wantRate >= 0 && r.Rate != wantRate {
			return false
		}
		return true
	}), nil
}

// Reply sets the company's reply on a review. The cache row is patched in
// place; no reload.
func (s *ReviewSection) Reply(ctx context.Context, id, reply string) error {
	if err := required("reply", reply); err != nil {
		return err
	}
	var review models.Review
	found, err := s.deps.Store.Get(ctx, store.Reviews, id, &review)
	if err != nil {
		return backendErr("load review", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "review"}
	}
	now := time.Now()
	s.state.BeginMutate()
	err = s.deps.Store.Update(ctx, store.Reviews, id, bson.M{
		"reply":     reply,
		"replied":   true,
		"replyDate": now,
	})
	if err != nil {
		err = backendErr("reply to review", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "reply", "review", id)
	s.cache.Patch(id, func(r *ReviewRow) {
		r.Reply = reply
		r.Replied = true
		r.ReplyDate = now
	})
	return nil
}
