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

const defaultCurrency = "YER"

// TripRow resolves the bus and, through it, the driver. Status is derived
// from the trip date at load time and backs the upcoming/past filter.
type TripRow struct {
	models.Trip
	Vehicle       *models.Vehicle `json:"vehicle"`
	Driver        *models.Driver  `json:"driver"`
	Status        string          `json:"status"` // upcoming or past
	DateFormatted string          `json:"dateFormatted"`
}

// TripInput carries times in the edit-UI format ("HH:MM AM/PM") and the
// waiting time as a plain minute count; both convert before storage.
type TripInput struct {
	FromCity       string  `json:"fromCity"`
	ToCity         string  `json:"toCity"`
	Date           string  `json:"date"`
	DepartureTime  string  `json:"departureTime"`
	ArrivalTime    string  `json:"arrivalTime"`
	WaitingMinutes int     `json:"waitingMinutes"`
	RouteType      string  `json:"routeType"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	VehicleID      string  `json:"vehicleId"`
}

type tripTimes struct {
	departure models.TimeOfDay
	arrival   models.TimeOfDay
	waiting   models.TimeOfDay
}

func (in TripInput) validate() (tripTimes, error) {
	var t tripTimes
	for _, check := range []struct{ field, value string }{
		{"fromCity", in.FromCity},
		{"toCity", in.ToCity},
		{"date", in.Date},
		{"departureTime", in.DepartureTime},
		{"arrivalTime", in.ArrivalTime},
	} {
		if err := required(check.field, check.value); err != nil {
			return t, err
		}
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return t, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	var err error
	if t.departure, err = models.ParseDisplay(in.DepartureTime); err != nil {
		return t, domain.ValidationError{Field: "departureTime", Msg: err.Error()}
	}
	if t.arrival, err = models.ParseDisplay(in.ArrivalTime); err != nil {
		return t, domain.ValidationError{Field: "arrivalTime", Msg: err.Error()}
	}
	if in.WaitingMinutes < 0 {
		return t, domain.ValidationError{Field: "waitingMinutes", Msg: "must not be negative"}
	}
	t.waiting = models.FromMinutes(in.WaitingMinutes)
	if in.Price < 0 {
		return t, domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	return t, nil
}

func formatTripDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("Jan 2, 2006")
}

func tripStatus(date string, now time.Time) string {
	if date >= now.Format("2006-01-02") {
		return "upcoming"
	}
	return "past"
}

type TripSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[TripRow]
}

func NewTripSection(deps Deps, companyID string) *TripSection {
	return &TripSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r TripRow) string { return r.ID }),
	}
}

func (s *TripSection) State() section.State { return s.state.State() }

func (s *TripSection) Load(ctx context.Context) ([]TripRow, error) {
	gen := s.state.BeginLoad()
	var trips []models.Trip
	if err := s.deps.Store.Query(ctx, store.Trips, bson.M{"companyId": s.companyID}, &trips); err != nil {
		werr := backendErr("load trips", err)
		s.state.FinishLoad(gen, werr)
		return nil, werr
	}
	now := time.Now()
	rows := make([]TripRow, len(trips))
	fns := make([]func(), len(trips))
	for i := range trips {
		i := i
		fns[i] = func() {
			t := trips[i]
			row := TripRow{
				Trip:          t,
				Status:        tripStatus(t.Date, now),
				DateFormatted: formatTripDate(t.Date),
			}
			// Driver hangs off the vehicle, so this lookup is sequential.
			row.Vehicle = s.deps.Resolver.Vehicle(ctx, t.VehicleID)
			if row.Vehicle != nil {
				row.Driver = s.deps.Resolver.Driver(ctx, row.Vehicle.DriverID)
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

// Rows searches the cities and the formatted date; filter is "upcoming" or
// "past".
func (s *TripSection) Rows(ctx context.Context, search, filter string) ([]TripRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r TripRow) bool {
		if !viewcache.ContainsFold(search, r.FromCity, r.ToCity, r.DateFormatted) {
			return false
		}
		if filter != "" && r.Status != filter {
			return false
		}
		return true
	}), nil
}

func (s *TripSection) Create(ctx context.Context, in TripInput) (string, error) {
	times, err := in.validate()
	if err != nil {
		return "", err
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	trip := models.Trip{
		CompanyID:     s.companyID,
		VehicleID:     in.VehicleID,
		FromCity:      in.FromCity,
		ToCity:        in.ToCity,
		Date:          in.Date,
		DepartureTime: times.departure,
		ArrivalTime:   times.arrival,
		WaitingTime:   times.waiting,
		RouteType:     in.RouteType,
		Price:         in.Price,
		Currency:      currency,
		CreatedAt:     time.Now(),
	}
	s.state.BeginMutate()
	id, err := s.deps.Store.Add(ctx, store.Trips, trip)
	if err != nil {
		err = backendErr("create trip", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return "", err
	}
	s.deps.Activity.Append(s.companyID, "create", "trip", id)
	s.reload(ctx)
	return id, nil
}

func (s *TripSection) Update(ctx context.Context, id string, in TripInput) error {
	times, err := in.validate()
	if err != nil {
		return err
	}
	var existing models.Trip
	found, err := s.deps.Store.Get(ctx, store.Trips, id, &existing)
	if err != nil {
		return backendErr("load trip", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "trip"}
	}
	currency := in.Currency
	if currency == "" {
		currency = existing.Currency
	}
	fields := bson.M{
		"fromCity":      in.FromCity,
		"toCity":        in.ToCity,
		"date":          in.Date,
		"departureTime": times.departure,
		"arrivalTime":   times.arrival,
		"waitingTime":   times.waiting,
		"routeType":     in.RouteType,
		"price":         in.Price,
		"currency":      currency,
		"vehicleId":     in.VehicleID,
	}
	s.state.BeginMutate()
	err = s.deps.Store.Update(ctx, store.Trips, id, fields)
	if err != nil {
		err = backendErr("update trip", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "trip", id)
	s.reload(ctx)
	return nil
}

// Delete refuses while any appointment still references the trip.
func (s *TripSection) Delete(ctx context.Context, id string) error {
	var existing models.Trip
	found, err := s.deps.Store.Get(ctx, store.Trips, id, &existing)
	if err != nil {
		return backendErr("load trip", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "trip"}
	}
	n, err := s.deps.Store.Count(ctx, store.Appointments, bson.M{"tripId": id})
	if err != nil {
		return backendErr("check trip appointments", err)
	}
	if n > 0 {
		return domain.ConstraintError{Resource: "trip", Msg: "trip still has appointments"}
	}
	s.state.BeginMutate()
	err = s.deps.Store.Delete(ctx, store.Trips, id)
	if err != nil {
		err = backendErr("delete trip", err)
	}
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "delete", "trip", id)
	s.reload(ctx)
	return nil
}

func (s *TripSection) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		logrus.Warnf("trips: reload after mutation failed: %v", err)
	}
}
