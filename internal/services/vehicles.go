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

// VehicleRow attaches the assigned driver and the owned address. Either may
// be nil and renders as "Unknown" client-side.
type VehicleRow struct {
	models.Vehicle
	Driver  *models.Driver  `json:"driver"`
	Address *models.Address `json:"address"`
}

type VehicleInput struct {
	VehicleNo    string       `json:"vehicleNo"`
	VehicleType  string       `json:"vehicleType"`
	CountOfSeats int          `json:"countOfSeats"`
	DriverID     string       `json:"driverId"`
	Address      AddressInput `json:"address"`
}

func (in VehicleInput) validate() error {
	if err := required("vehicleNo", in.VehicleNo); err != nil {
		return err
	}
	if err := required("vehicleType", in.VehicleType); err != nil {
		return err
	}
	if in.CountOfSeats <= 0 {
		return domain.ValidationError{Field: "countOfSeats", Msg: "must be positive"}
	}
	return nil
}

type VehicleSection struct {
	deps      Deps
	companyID string
	state     *section.Section
	cache     *viewcache.Cache[VehicleRow]
}

func NewVehicleSection(deps Deps, companyID string) *VehicleSection {
	return &VehicleSection{
		deps:      deps,
		companyID: companyID,
		state:     section.New(),
		cache:     viewcache.New(func(r VehicleRow) string { return r.ID }),
	}
}

func (s *VehicleSection) State() section.State { return s.state.State() }

func (s *VehicleSection) Load(ctx context.Context) ([]VehicleRow, error) {
	gen := s.state.BeginLoad()
	var vehicles []models.Vehicle
	if err := s.deps.Store.Query(ctx, store.Vehicles, bson.M{"companyId": s.companyID}, &vehicles); err != nil {
		werr := backendErr("load buses", err)
		s.state.FinishLoad(gen, werr)
		return nil, werr
	}
	rows := make([]VehicleRow, len(vehicles))
	fns := make([]func(), len(vehicles))
	for i := range vehicles {
		i := i
		fns[i] = func() {
			v := vehicles[i]
			row := VehicleRow{Vehicle: v}
			resolver.Join(
				func() { row.Driver = s.deps.Resolver.Driver(ctx, v.DriverID) },
				func() { row.Address = s.deps.Resolver.Address(ctx, v.AddressID) },
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

// Rows searches vehicleNo and driver name; the type filter matches
// vehicleType exactly.
func (s *VehicleSection) Rows(ctx context.Context, search, vehicleType string) ([]VehicleRow, error) {
	if s.state.State() == section.Idle {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Select(func(r VehicleRow) bool {
		driverName := ""
		if r.Driver != nil {
			driverName = r.Driver.Name
		}
		if !viewcache.ContainsFold(search, r.VehicleNo, driverName) {
			return false
		}
		if vehicleType != "" && !strings.EqualFold(r.VehicleType, vehicleType) {
			return false
		}
		return true
	}), nil
}

func (s *VehicleSection) Create(ctx context.Context, in VehicleInput) (string, error) {
	if err := in.validate(); err != nil {
		return "", err
	}
	s.state.BeginMutate()
	id, err := s.create(ctx, in)
	s.state.FinishMutate(err)
	if err != nil {
		return "", err
	}
	s.deps.Activity.Append(s.companyID, "create", "bus", id)
	s.reload(ctx)
	return id, nil
}

func (s *VehicleSection) create(ctx context.Context, in VehicleInput) (string, error) {
	var addressID string
	if !in.Address.empty() {
		var err error
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return "", backendErr("create bus address", err)
		}
	}
	veh := models.Vehicle{
		CompanyID:    s.companyID,
		DriverID:     in.DriverID,
		AddressID:    addressID,
		VehicleNo:    in.VehicleNo,
		VehicleType:  in.VehicleType,
		CountOfSeats: in.CountOfSeats,
		CreatedAt:    time.Now(),
	}
	id, err := s.deps.Store.Add(ctx, store.Vehicles, veh)
	if err != nil {
		return "", backendErr("create bus", err)
	}
	return id, nil
}

func (s *VehicleSection) Update(ctx context.Context, id string, in VehicleInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	var existing models.Vehicle
	found, err := s.deps.Store.Get(ctx, store.Vehicles, id, &existing)
	if err != nil {
		return backendErr("load bus", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "bus"}
	}
	s.state.BeginMutate()
	err = s.update(ctx, existing, in)
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "update", "bus", id)
	s.reload(ctx)
	return nil
}

func (s *VehicleSection) update(ctx context.Context, existing models.Vehicle, in VehicleInput) error {
	addressID := existing.AddressID
	if addressID != "" {
		if err := s.deps.Store.Update(ctx, store.Addresses, addressID, in.Address.fields()); err != nil {
			return backendErr("update bus address", err)
		}
	} else if !in.Address.empty() {
		var err error
		addressID, err = s.deps.Store.Add(ctx, store.Addresses, in.Address.toModel())
		if err != nil {
			return backendErr("create bus address", err)
		}
	}
	fields := bson.M{
		"vehicleNo":    in.VehicleNo,
		"vehicleType":  in.VehicleType,
		"countOfSeats": in.CountOfSeats,
		"driverId":     in.DriverID,
		"addressId":    addressID,
	}
	if err := s.deps.Store.Update(ctx, store.Vehicles, existing.ID, fields); err != nil {
		return backendErr("update bus", err)
	}
	return nil
}

// Delete refuses while any trip still references the bus, then removes the
// bus and its owned address.
func (s *VehicleSection) Delete(ctx context.Context, id string) error {
	var existing models.Vehicle
	found, err := s.deps.Store.Get(ctx, store.Vehicles, id, &existing)
	if err != nil {
		return backendErr("load bus", err)
	}
	if !found {
		return domain.NotFoundError{Resource: "bus"}
	}
	n, err := s.deps.Store.Count(ctx, store.Trips, bson.M{"vehicleId": id})
	if err != nil {
		return backendErr("check bus trips", err)
	}
	if n > 0 {
		return domain.ConstraintError{Resource: "bus", Msg: "bus still has scheduled trips"}
	}
	s.state.BeginMutate()
	err = s.delete(ctx, existing)
	s.state.FinishMutate(err)
	if err != nil {
		return err
	}
	s.deps.Activity.Append(s.companyID, "delete", "bus", id)
	s.reload(ctx)
	return nil
}

func (s *VehicleSection) delete(ctx context.Context, existing models.Vehicle) error {
	if err := s.deps.Store.Delete(ctx, store.Vehicles, existing.ID); err != nil {
		return backendErr("delete bus", err)
	}
	if existing.AddressID != "" {
		if err := s.deps.Store.Delete(ctx, store.Addresses, existing.AddressID); err != nil {
			return backendErr("delete bus address", err)
		}
	}
	return nil
}

func (s *VehicleSection) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		logrus.Warnf("buses: reload after mutation failed: %v", err)
	}
}
