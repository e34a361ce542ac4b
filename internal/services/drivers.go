package services

import (
	"context"
	"strings"
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

// DriverRow is a driver denormalized for the table: owned address attached,
// age derived from the date of birth at load time.
type DriverRow struct {
	models.Driver
	Address *models.Address `json:"address"`
	Age     int             `json:"age"`
}

type DriverInput struct {
	Name        string       `json:"name"`
	PhoneNumber string       `json:"phoneNumber"`
	Email       string       `json:"email"`
	Gender      string       `json:"gender"`
	DateOfBirth string       `json:"dateOfBirth"`
	LicenseNo   string       `json:"licenseNo"`
	Bio         string       `json:"bio"`
	Address     AddressInput `json:"address"`
}

func (in DriverInput) validate() error {
	for _, check := range []struct{ field, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"gender", in.Gender},
		{"dateOfBirth", in.DateOfBirth},
	} {
		if err := required(check.field, check.value); err != nil {
			return err
		}
	}
	return validatePhone(in.PhoneNumber)
}

type DriverSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[DriverRow]
}

func NewDriverSection(deps Deps, companyID string) *DriverSection {
	return &DriverSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r DriverRow) string { return r.ID }),
	}
}

func (s *DriverSection) State() section.State { return s.state.State() }

// Load queries the company's drivers and resolves their addresses in
// parallel. Row order follows query order, not lookup completion order.
func (s *DriverSection) Load(ctx context.Context) ([]DriverRow, error) {
	gen := s.state.BeginLoad()
	var drivers []models.Driver
	if err := s.deps.Store.Query(ctx, store.Drivers, bson.M{"companyId": s.companyID}, &drivers); err != nil {
		werr := backendErr("load drivers", err)
		s.state.FinishLoad(gen, werr)
		return nil, werr
	}
	now := time.Now()
	rows := make([]DriverRow, len(drivers))
	fns := make([]func(), len(drivers))
	for i := range drivers {
		i := i
		fns[i] = func() {
			d := drivers[i]
			rows[i] = DriverRow{
				Driver:  d,
				Address: s.deps.Resolver.Address(ctx, d.AddressID),
				Age:     models.AgeAt(d.DateOfBirth, now),
			}
		}
	}
	resolver.Join(fns...)
	if !s.state.FinishLoad(gen, nil) {
		// A newer load finished first; this result is stale.
		return rows, nil
	}
	s.cache.Set(rows)
	return rows, nil
}

// Rows serves search+filter from the cache. Search matches name, email and
// phone; the gender filter is an exact match; both together AND.
func (s *DriverSection) Rows(ctx context.Context, search, gender string) ([]DriverRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r DriverRow) bool {
		if !viewcache.ContainsFold(search, r.Name, r.Email, r.PhoneNumber) {
			return false
		}
		if gender != "" && !strings.EqualFold(r.Gender, gender) {
			return false
		}
		return true
	}), nil
}

func (s *DriverSection) Create(ctx context.Context, in DriverInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	s.state.BeginMutate()
	id, err := s.create(ctx, in)
	s.state.FinishMutate(err)
	if err != nil {
		return "", err
	}
	s.deps.Activity.Append(s.companyID, "create", "driver", id)
	s.reload(ctx)
	return id, nil
}

func (s *DriverSection) create(ctx context.Context, in DriverInput) (string, error) {
	var addressID string
	if !in.Address.empty() {
		var err error
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return "", backendErr("create driver address", err)
		}
	}
	drv := models.Driver{
		CompanyID:   s.companyID,
		AddressID:   addressID,
		Name:        in.Name,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Gender:      in.Gender,
		DateOfBirth: in.DateOfBirth,
		LicenseNo:   in.LicenseNo,
		Bio:         in.Bio,
		CreatedAt:   time.Now(),
	}
	id, err := s.deps.Store.Add(ctx, store.Drivers, drv)
	if err != nil {
		return "", backendErr("create driver", err)
	}
	return id, nil
}

// Update replaces every editable field. The owned address is updated when
// one exists, created and attached otherwise.
func (s *DriverSection) Update(ctx context.Context, id string, in DriverInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	var existing models.Driver
	found, err := s.deps.Store.Get(ctx, store.Drivers, id, &existing)
	if err != nil {
		return backendErr("load driver", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "driver"}
	}
	s.state.BeginMutate()
	err = s.update(ctx, existing, in)
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "driver", id)
	s.reload(ctx)
	return nil
}

func (s *DriverSection) update(ctx context.Context, existing models.Driver, in DriverInput) error {
	addressID := existing.AddressID
	if addressID != "" {
		if err := s.deps.Store.Update(ctx, store.Addresses, addressID, in.Address.fields()); err != nil {
			return backendErr("update driver address", err)
		}
	} else if !in.Address.empty() {
		var err error
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return backendErr("create driver address", err)
		}
	}
	fields := bson.M{
		"name":        in.Name,
		"phoneNumber": in.PhoneNumber,
		"email":       in.Email,
		"gender":      in.Gender,
		"dateOfBirth": in.DateOfBirth,
		"licenseNo":   in.LicenseNo,
		"bio":         in.Bio,
		"addressId":   addressID,
	}
	if err := s.deps.Store.Update(ctx, store.Drivers, existing.ID, fields); err != nil {
		return backendErr("update driver", err)
	}
	return nil
}

// Delete refuses while any bus still references the driver, then removes
// the driver and its owned address.
func (s *DriverSection) Delete(ctx context.Context, id string) error {
	var existing models.Driver
	found, err := s.deps.Store.Get(ctx, store.Drivers, id, &existing)
	if err != nil {
		return backendErr("load driver", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "driver"}
	}
	n, err := s.deps.Store.Count(ctx, store.Vehicles, bson.M{"driverId": id})
	if err != nil {
		return backendErr("check driver buses", err)
	}
	if n > 0 {
		return domain.ConstraintError{Resource: "driver", Msg: "driver is still assigned to a bus"}
	}
	s.state.BeginMutate()
	err = s.delete(ctx, existing)
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "delete", "driver", id)
	s.reload(ctx)
	return nil
}

func (s *DriverSection) delete(ctx context.Context, existing models.Driver) error {
	if err := s.deps.Store.Delete(ctx, store.Drivers, existing.ID); err != nil {
		return backendErr("delete driver", err)
	}
	if existing.AddressID != "" {
		if err := s.deps.Store.Delete(ctx, store.Addresses, existing.AddressID); err != nil {
			return backendErr("delete driver address", err)
		}
	}
	return nil
}

func (s *DriverSection) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		logrus.Warnf("drivers: reload after mutation failed: %v", err)
	}
}
