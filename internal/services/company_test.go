package services

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/session"
	"bus-company-admin-api/internal/store"
)

func newCompanyService(t *testing.T) (*CompanyService, *store.MemStore) {
	t.Helper()
	deps, st := newTestDeps(t)
	return NewCompanyService(deps, session.NewStore()), st
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Aden Express",
		Email:    "admin@adenexpress.example",
		Password: "secret1",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	in := registerInput()
	in.Address = AddressInput{City: "Aden"}
	id, err := svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	company, err := svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if company.ID != id || company.Name != "Aden Express" {
		t.Fatalf("company = %+v", company)
	}
	if company.LastLoginAt.IsZero() {
		t.Fatal("lastLoginAt not stamped")
	}

	if _, err := svc.Login(ctx, in.Email, "wrong"); !domain.IsValidation(err) {
		t.Fatalf("wrong password: err = %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !domain.IsNotFound(err) {
		t.Fatalf("unknown email: err = %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, registerInput()); !domain.IsConstraint(err) {
		t.Fatalf("duplicate email: err = %v", err)
	}

	in := registerInput()
	in.Password = "short"
	in.Email = "other@example.com"
	if _, err := svc.Register(ctx, in); !domain.IsValidation(err) {
		t.Fatalf("short password: err = %v", err)
	}
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	svc, st := newCompanyService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := st.Update(ctx, store.Companies, id, bson.M{"emailVerified": false}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Login(ctx, registerInput().Email, registerInput().Password); err != ErrEmailNotVerified {
		t.Fatalf("unverified login: err = %v", err)
	}
}

func TestProfileRestoresFromStore(t *testing.T) {
	svc, _ := newCompanyService(t)
	ctx := context.Background()

	in := registerInput()
	in.Address = AddressInput{City: "Aden"}
	id, err := svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Cold cache: no login happened, the profile must come from the store.
	profile, err := svc.Profile(ctx, id)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Aden Express" {
		t.Fatalf("profile = %+v", profile)
	}
	if profile.Address == nil || profile.Address.City != "Aden" {
		t.Fatalf("address = %+v", profile.Address)
	}

	if _, err := svc.Profile(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("missing profile: err = %v", err)
	}
}

func TestUpdateProfileWritesThrough(t *testing.T) {
	svc, st := newCompanyService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, registerInput().Email, registerInput().Password); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.UpdateProfile(ctx, id, ProfileInput{
		Name:        "Aden Express Ltd",
		PhoneNumber: "781234567",
		Address:     AddressInput{City: "Sana'a"},
	}); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	// The session cache was invalidated; the next read shows fresh data.
	profile, err := svc.Profile(ctx, id)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Name != "Aden Express Ltd" || profile.PhoneNumber != "781234567" {
		t.Fatalf("profile = %+v", profile)
	}

	var company models.Company
	if _, err := st.Get(ctx, store.Companies, id, &company); err != nil {
		t.Fatalf("get: %v", err)
	}
	if company.Name != "Aden Express Ltd" {
		t.Fatalf("stored name = %q", company.Name)
	}
}

func TestDashboardCounts(t *testing.T) {
	svc, st := newCompanyService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	st.Add(ctx, store.Drivers, models.Driver{CompanyID: id, Name: "a"})
	st.Add(ctx, store.Drivers, models.Driver{CompanyID: id, Name: "b"})
	st.Add(ctx, store.Vehicles, models.Vehicle{CompanyID: id, VehicleNo: "B-1"})
	st.Add(ctx, store.Trips, models.Trip{CompanyID: id, FromCity: "Aden"})
	st.Add(ctx, store.Drivers, models.Driver{CompanyID: "other", Name: "c"})

	stats, err := svc.Dashboard(ctx, id)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.Drivers != 2 || stats.Buses != 1 || stats.Trips != 1 || stats.Reviews != 0 {
		t.Fatalf("stats = %+v", stats)
	}
}
