package services

import (
	"context"
	"strings"

	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/resolver"
	"bus-company-admin-api/internal/section"
	"bus-company-admin-api/internal/store"
	"bus-company-admin-api/internal/viewcache"
)

// PaymentRow pairs a payment with the appointment that links to it and that
// appointment's passenger.
type PaymentRow struct {
	models.Payment
	Appointment *models.Appointment `json:"appointment"`
	Passenger   *models.Passenger   `json:"passenger"`
}

// PaymentSection is read-only. Payments have no companyId; the only
// supported path is company trips → appointments → paymentId, batch-fetched
// by id list.
type PaymentSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[PaymentRow]
}

func NewPaymentSection(deps Deps, companyID string) *PaymentSection {
	return &PaymentSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r PaymentRow) string { return r.ID }),
	}
}

func (s *PaymentSection) State() section.State { return s.state.State() }

func (s *PaymentSection) Load(ctx context.Context) ([]PaymentRow, error) {
	gen := s.state.BeginLoad()
	appts, err := companyAppointments(ctx, s.deps, s.companyID)
	if err != nil {
		s.state.FinishLoad(gen, err)
		return nil, err
	}
	var paymentIDs []string
	byPayment := make(map[string]models.Appointment)
	for _, a := range appts {
		if a.PaymentID == "" {
			continue
		}
		if _, seen := byPayment[a.PaymentID]; seen {
			continue
		}
		byPayment[a.PaymentID] = a
		paymentIDs = append(paymentIDs, a.PaymentID)
	}
	var payments []models.Payment
	if len(paymentIDs) > 0 {
		if err := s.deps.Store.GetByIDs(ctx, store.Payments, paymentIDs, &payments); err != nil {
			werr := backendErr("load payments", err)
			s.state.FinishLoad(gen, werr)
			return nil, werr
		}
	}
	rows := make([]PaymentRow, len(payments))
	fns := make([]func(), len(payments))
	for i := range payments {
		i := i
		fns[i] = func() {
			p := payments[i]
			appt, ok := byPayment[p.ID]
			row := PaymentRow{Payment: p}
			if ok {
				row.Appointment = &appt
				row.Passenger = s.deps.Resolver.Passenger(ctx, appt.PassengerID)
			}
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

// Rows searches transaction id and passenger name; filter matches the
// payment status.
func (s *PaymentSection) Rows(ctx context.Context, search, status string) ([]PaymentRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r PaymentRow) bool {
		passengerName := ""
		if r.Passenger != nil {
			passengerName = r.Passenger.Name
		}
		if !viewcache.ContainsFold(search, r.TransactionID, passengerName) {
			return false
		}
		if status != "" && !strings.EqualFold(r.PaymentStatus, status) {
			return false
		}
		return true
	}), nil
}
