// Package session caches the authenticated company's profile between
// requests, the way the console keeps it in browser-local storage: filled on
// sign-in, restored on demand, invalidated on sign-out.
package session

import (
	"sync"

	"bus-company-admin-api/internal/models"
)

type Store struct {
	mu   sync.RWMutex
	byID map[string]*models.Company
}

func NewStore() *Store {
	return &Store{byID: make(map[string]*models.Company)}
}

func (s *Store) Put(c *models.Company) {
	if c == nil || c.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[c.ID] = c
}

// Get returns the cached profile or nil when absent.
func (s *Store) Get(companyID string) *models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[companyID]
}

func (s *Store) Invalidate(companyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, companyID)
}
