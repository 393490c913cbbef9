// Package memory provides the in-memory BIC directory, suitable for single
// instance deployments and tests. For shared state across instances use the
// postgres store, optionally fronted by the redis cache.
package memory

import (
	"context"
	"fmt"
	"sync"

	"schwifty/internal/bic"
	"schwifty/pkg/domain"
	"schwifty/pkg/platform/sentinel"
)

// InMemory implements bic.Directory over a map keyed by country and bank
// code.
type InMemory struct {
	mu      sync.RWMutex
	entries map[string]bic.BIC
}

// NewInMemory creates an empty in-memory directory.
func NewInMemory() *InMemory {
	return &InMemory{entries: make(map[string]bic.BIC)}
}

// Put registers or replaces an association.
func (s *InMemory) Put(_ context.Context, countryCode domain.CountryCode, bankCode string, value bic.BIC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(countryCode, bankCode)] = value
	return nil
}

// LookupByBankCode implements bic.Directory.
func (s *InMemory) LookupByBankCode(_ context.Context, countryCode domain.CountryCode, bankCode string) (bic.BIC, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.entries[key(countryCode, bankCode)]
	if !ok {
		return bic.BIC{}, fmt.Errorf("bic for %s/%s: %w", countryCode, bankCode, sentinel.ErrNotFound)
	}
	return b, nil
}

func key(countryCode domain.CountryCode, bankCode string) string {
	return string(countryCode) + ":" + bankCode
}
