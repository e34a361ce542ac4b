package services

import (
	"context"
	"fmt"
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

// AppointmentRow denormalizes the trip, passenger and payment behind a
// booking.
type AppointmentRow struct {
	models.Appointment
	Trip      *models.Trip      `json:"trip"`
	Passenger *models.Passenger `json:"passenger"`
	Payment   *models.Payment   `json:"payment"`
}

// AppointmentSection scopes through the company's trips: appointments carry
// no companyId, so the load collects trip ids first and batch-fetches by
// tripId.
type AppointmentSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[AppointmentRow]
}

func NewAppointmentSection(deps Deps, companyID string) *AppointmentSection {
	return &AppointmentSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r AppointmentRow) string { return r.ID }),
	}
}

func (s *AppointmentSection) State() section.State { return s.state.State() }

// companyAppointments fetches the appointments reachable from the company's
// trips. Shared with the payments section.
func companyAppointments(ctx context.Context, deps Deps, companyID string) ([]models.Appointment, error) {
	var trips []models.Trip
	if err := deps.Store.Query(ctx, store.Trips, bson.M{"companyId": companyID}, &trips); err != nil {
		return nil, backendErr("load trips", err)
	}
	if len(trips) == 0 {
		return nil, nil
	}
	tripIDs := make([]string, len(trips))
	for i, t := range trips {
		tripIDs[i] = t.ID
	}
	var appts []models.Appointment
	if err := deps.Store.QueryIn(ctx, store.Appointments, "tripId", tripIDs, &appts); err != nil {
		return nil, backendErr("load appointments", err)
	}
	return appts, nil
}

func (s *AppointmentSection) Load(ctx context.Context) ([]AppointmentRow, error) {
	gen := s.state.BeginLoad()
	appts, err := companyAppointments(ctx, s.deps, s.companyID)
	if err != nil {
		s.state.FinishLoad(gen, err)
		return nil, err
	}
	rows := make([]AppointmentRow, len(appts))
	fns := make([]func(), len(appts))
	for i := range appts {
		i := i
		fns[i] = func() {
			a := appts[i]
			if a.AppointmentStatus == "" {
				a.AppointmentStatus = models.AppointmentPending
			}
			row := AppointmentRow{Appointment: a}
			resolver.Join(
				func() { row.Trip = s.deps.Resolver.Trip(ctx, a.TripID) },
				func() { row.Passenger = s.deps.Resolver.Passenger(ctx, a.PassengerID) },
				func() { row.Payment = s.deps.Resolver.Payment(ctx, a.PaymentID) },
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

// Rows searches passenger name and seat number; filter matches the status.
func (s *AppointmentSection) Rows(ctx context.Context, search, status string) ([]AppointmentRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r AppointmentRow) bool {
		passengerName := ""
		if r.Passenger != nil {
			passengerName = r.Passenger.Name
		}
		if !viewcache.ContainsFold(search, passengerName, r.SeatNumber) {
			return false
		}
		if status != "" && r.AppointmentStatus != status {
			return false
		}
		return true
	}), nil
}

// Approve moves a pending appointment to approved and notifies the
// passenger. The cache is patched in place; no reload.
func (s *AppointmentSection) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.AppointmentApproved)
}

// Reject moves a pending appointment to rejected and notifies the
// passenger.
func (s *AppointmentSection) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, models.AppointmentRejected)
}

func (s *AppointmentSection) transition(ctx context.Context, id, status string) error {
	var appt models.Appointment
	found, err := s.deps.Store.Get(ctx, store.Appointments, id, &appt)
	if err != nil {
		return backendErr("load appointment", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "appointment"}
	}
	if appt.AppointmentStatus != models.AppointmentPending {
		return domain.ValidationError{
			Field: "appointmentStatus",
			Msg:   fmt.Sprintf("appointment is already %s", appt.AppointmentStatus),
		}
	}
	s.state.BeginMutate()
	err = s.deps.Store.Update(ctx, store.Appointments, id, bson.M{"appointmentStatus": status})
	if err != nil {
		err = backendErr("update appointment", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.notifyPassenger(ctx, appt, status)
	s.deps.Activity.Append(s.companyID, status, "appointment", id)
	s.cache.Patch(id, func(r *AppointmentRow) { r.AppointmentStatus = status })
	return nil
}

// notifyPassenger is best-effort, like the activity append: a failed
// notification never rolls back the transition.
func (s *AppointmentSection) notifyPassenger(ctx context.Context, appt models.Appointment, status string) {
	if appt.PassengerID == "" {
		return
	}
	n := models.Notification{
		From:    s.companyID,
		To:      appt.PassengerID,
		Title:   fmt.Sprintf("Appointment %s", status),
		Content: fmt.Sprintf("Your appointment for seat %s has been %s", appt.SeatNumber, status),
		SentAt:  time.Now(),
	}
	if _, err := s.deps.Store.Add(ctx, store.Notifications, n); err != nil {
		logrus.Warnf("appointments: passenger notification failed: %v", err)
	}
}
