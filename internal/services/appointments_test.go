package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

func seedTripWithAppointment(t *testing.T, st *store.MemStore, companyID, status string) (tripID, apptID, passengerID string) {
	t.Helper()
	ctx := context.Background()
	tripID, err := st.Add(ctx, store.Trips, models.Trip{CompanyID: companyID, FromCity: "Aden", ToCity: "Sana'a", Date: "2030-01-01"})
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	passengerID = seedPassenger(t, st, "omar")
	apptID, err = st.Add(ctx, store.Appointments, models.Appointment{
		TripID:            tripID,
		PassengerID:       passengerID,
		SeatNumber:        "A1",
		AppointmentStatus: status,
	})
	if err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return tripID, apptID, passengerID
}

func TestAppointmentLoadScopesThroughTrips(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	_, apptID, _ := seedTripWithAppointment(t, st, "c1", models.AppointmentPending)
	seedTripWithAppointment(t, st, "c2", models.AppointmentPending)

	s := NewAppointmentSection(deps, "c1")
	rows, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != apptID {
		t.Fatalf("rows = %+v", rows)
	}
	if rows[0].Trip == nil || rows[0].Trip.FromCity != "Aden" {
		t.Fatalf("trip not resolved: %+v", rows[0].Trip)
	}
	if rows[0].Passenger == nil || rows[0].Passenger.Name != "omar" {
		t.Fatalf("passenger not resolved: %+v", rows[0].Passenger)
	}
}

func TestAppointmentLoadDefaultsStatusToPending(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	seedTripWithAppointment(t, st, "c1", "")

	s := NewAppointmentSection(deps, "c1")
	rows, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows[0].AppointmentStatus != models.AppointmentPending {
		t.Fatalf("status = %q", rows[0].AppointmentStatus)
	}
}

func TestAppointmentApprove(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	_, apptID, passengerID := seedTripWithAppointment(t, st, "c1", models.AppointmentPending)

	s := NewAppointmentSection(deps, "c1")
	if _, err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := s.Approve(ctx, apptID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var appt models.Appointment
	if _, err := st.Get(ctx, store.Appointments, apptID, &appt); err != nil {
		t.Fatalf("get: %v", err)
	}
	if appt.AppointmentStatus != models.AppointmentApproved {
		t.Fatalf("status = %q", appt.AppointmentStatus)
	}

	// The cache is patched in place instead of reloading.
	rows, _ := s.Rows(ctx, "", "")
	if len(rows) != 1 || rows[0].AppointmentStatus != models.AppointmentApproved {
		t.Fatalf("cache not patched: %+v", rows)
	}

	// The passenger is notified.
	var notes []models.Notification
	if err := st.Query(ctx, store.Notifications, bson.M{"to": passengerID}, &notes); err != nil {
		t.Fatalf("query notifications: %v", err)
	}
	if len(notes) != 1 || notes[0].From != "c1" {
		t.Fatalf("notifications = %+v", notes)
	}
}

func TestAppointmentTransitionIsOneWay(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	_, apptID, _ := seedTripWithAppointment(t, st, "c1", models.AppointmentApproved)

	s := NewAppointmentSection(deps, "c1")
	if err := s.Reject(ctx, apptID); !domain.IsValidation(err) {
		t.Fatalf("reject approved: err = %v", err)
	}
	if err := s.Approve(ctx, apptID); !domain.IsValidation(err) {
		t.Fatalf("re-approve: err = %v", err)
	}
	if err := s.Approve(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("approve missing: err = %v", err)
	}
}

func TestAppointmentRowsSearchAndFilter(t *testing.T) {
	deps, st := newTestDeps(t)
	ctx := context.Background()
	tripID, _, _ := seedTripWithAppointment(t, st, "c1", models.AppointmentPending)
	zaid := seedPassenger(t, st, "zaid")
	if _, err := st.Add(ctx, store.Appointments, models.Appointment{
		TripID: tripID, PassengerID: zaid, SeatNumber: "B2", AppointmentStatus: models.AppointmentApproved,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewAppointmentSection(deps, "c1")
	rows, err := s.Rows(ctx, "omar", "")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 1 || rows[0].SeatNumber != "A1" {
		t.Fatalf("passenger search = %+v", rows)
	}

	rows, _ = s.Rows(ctx, "", models.AppointmentApproved)
	if len(rows) != 1 || rows[0].SeatNumber != "B2" {
		t.Fatalf("status filter = %+v", rows)
	}

	rows, _ = s.Rows(ctx, "B2", models.AppointmentPending)
	if len(rows) != 0 {
		t.Fatalf("AND semantics = %+v", rows)
	}
}
