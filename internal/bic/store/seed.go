package store

import (
	"context"

	"schwifty/internal/bic"
	"schwifty/internal/bic/store/memory"
	"schwifty/pkg/domain"
)

// SeedSampleDirectory fills an in-memory directory with a small set of
// well-known institutions so the service answers BIC lookups out of the box
// when no database is configured. Bank codes follow the positional layout of
// each country's specification.
func SeedSampleDirectory(s *memory.InMemory) {
	ctx := context.Background()
	entries := []struct {
		country  domain.CountryCode
		bankCode string
		value    bic.BIC
	}{
		{"DE", "37040044", bic.MustParse("COBADEFFXXX")},
		{"DE", "10000000", bic.MustParse("MARKDEF1100")},
		{"GB", "NWBK", bic.MustParse("NWBKGB2LXXX")},
		{"NL", "ABNA", bic.MustParse("ABNANL2AXXX")},
		{"ES", "2100", bic.MustParse("CAIXESBBXXX")},
		{"FR", "20041", bic.MustParse("PSSTFRPPXXX")},
	}
	for _, e := range entries {
		_ = s.Put(ctx, e.country, e.bankCode, e.value)
	}
}
