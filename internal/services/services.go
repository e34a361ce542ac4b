// Package services implements the dashboard sections. Every section follows
// the same cycle: load company-scoped records, resolve relations in
// parallel, fill the view cache, serve search/filter from the cache, write
// mutations through the store, append an activity record, then either
// reload in full or patch the cache in place for single-field transitions.
package services

import (
	"regexp"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"bus-company-admin-api/internal/activity"
	"bus-company-admin-api/internal/domain"
	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/resolver"
	"bus-company-admin-api/internal/store"
)

type Deps struct {
	Store    store.Store
	Resolver *resolver.Resolver
	Activity *activity.Logger
}

// Workspace bundles one company's sections. Each section owns its view
// state and cache; nothing is shared across companies.
type Workspace struct {
	CompanyID     string
	Drivers       *DriverSection
	Vehicles      *VehicleSection
	Trips         *TripSection
	Appointments  *AppointmentSection
	Payments      *PaymentSection
	Reviews       *ReviewSection
	Notifications *NotificationSection
	Schedule      *ScheduleSection
}

func NewWorkspace(deps Deps, companyID string) *Workspace {
	return &Workspace{
		CompanyID:     companyID,
		Drivers:       NewDriverSection(deps, companyID),
		Vehicles:      NewVehicleSection(deps, companyID),
		Trips:         NewTripSection(deps, companyID),
		Appointments:  NewAppointmentSection(deps, companyID),
		Payments:      NewPaymentSection(deps, companyID),
		Reviews:       NewReviewSection(deps, companyID),
		Notifications: NewNotificationSection(deps, companyID),
		Schedule:      NewScheduleSection(deps, companyID),
	}
}

// Registry hands out per-company workspaces, creating them lazily on first
// use after sign-in.
type Registry struct {
	mu        sync.Mutex
	deps      Deps
	byCompany map[string]*Workspace
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps, byCompany: make(map[string]*Workspace)}
}

func (r *Registry) Workspace(companyID string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.byCompany[companyID]
	if !ok {
		ws = NewWorkspace(r.deps, companyID)
		r.byCompany[companyID] = ws
	}
	return ws
}

// Drop discards a company's workspace, typically on sign-out.
func (r *Registry) Drop(companyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byCompany, companyID)
}

// phoneRe matches Yemeni mobile numbers: a known prefix plus seven digits.
var phoneRe = regexp.MustCompile(`^(78|77|70|71|73)[0-9]{7}$`)

func validatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return domain.ValidationError{
			Field: "phoneNumber",
			Msg:   "must be 9 digits starting with 78, 77, 70, 71 or 73",
		}
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.ValidationError{Field: field, Msg: "is required"}
	}
	return nil
}

func backendErr(op string, err error) error {
	return domain.BackendError{Op: op, Err: err}
}

// AddressInput is the shared nested-address form used by driver, bus and
// company forms.
type AddressInput struct {
	StreetName   string `json:"streetName"`
	StreetNumber string `json:"streetNumber"`
	City         string `json:"city"`
	District     string `json:"district"`
	Country      string `json:"country"`
	NextTo       string `json:"nextTo"`
}

func (a AddressInput) empty() bool {
	return a.StreetName == "" && a.StreetNumber == "" && a.City == "" &&
		a.District == "" && a.Country == "" && a.NextTo == ""
}

func (a AddressInput) toModel() models.Address {
	return models.Address{
		StreetName:   a.StreetName,
		StreetNumber: a.StreetNumber,
		City:         a.City,
		District:     a.District,
		Country:      a.Country,
		NextTo:       a.NextTo,
	}
}

func (a AddressInput) fields() bson.M {
	return bson.M{
		"streetName":   a.StreetName,
		"streetNumber": a.StreetNumber,
		"city":         a.City,
		"district":     a.District,
		"country":      a.Country,
		"nextTo":       a.NextTo,
	}
}
