// Package resolver attaches related documents to primary records. A missing
// id or a deleted target resolves to nil, never an error: one broken
// relation must not fail an entire list render.
package resolver

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"bus-company-admin-api/internal/models"
	"bus-company-admin-api/internal/store"
)

type Resolver struct {
	Store store.Store
}

func New(s store.Store) *Resolver {
	return &Resolver{Store: s}
}

// Join runs fns concurrently and blocks until every one settles. Completion
// order is unspecified; callers keep their own record order.
func Join(fns ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		go func(f func()) {
			defer wg.Done()
			f()
		}(fn)
	}
	wg.Wait()
}

func lookup[T any](r *Resolver, ctx context.Context, collection, id string) *T {
	if id == "" {
		return nil
	}
	var v T
	found, err := r.Store.Get(ctx, collection, id, &v)
	if err != nil {
		logrus.Debugf("resolver: %s/%s lookup failed: %v", collection, id, err)
		return nil
	}
	if !found {
		return nil
	}
	return &v
}

func (r *Resolver) Address(ctx context.Context, id string) *models.Address {
	return lookup[models.Address](r, ctx, store.Addresses, id)
}

func (r *Resolver) Driver(ctx context.Context, id string) *models.Driver {
	return lookup[models.Driver](r, ctx, store.Drivers, id)
}

func (r *Resolver) Vehicle(ctx context.Context, id string) *models.Vehicle {
	return lookup[models.Vehicle](r, ctx, store.Vehicles, id)
}

func (r *Resolver) Trip(ctx context.Context, id string) *models.Trip {
	return lookup[models.Trip](r, ctx, store.Trips, id)
}

func (r *Resolver) Passenger(ctx context.Context, id string) *models.Passenger {
	return lookup[models.Passenger](r, ctx, store.Passengers, id)
}

func (r *Resolver) Payment(ctx context.Context, id string) *models.Payment {
	return lookup[models.Payment](r, ctx, store.Payments, id)
}

func (r *Resolver) Company(ctx context.Context, id string) *models.Company {
	return lookup[models.Company](r, ctx, store.Companies, id)
}
