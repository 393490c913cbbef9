package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schwifty/internal/bic/store/memory"
)

func TestSeedSampleDirectory(t *testing.T) {
	s := memory.NewInMemory()
	SeedSampleDirectory(s)
	ctx := context.Background()

	b, err := s.LookupByBankCode(ctx, "DE", "37040044")
	require.NoError(t, err)
	assert.Equal(t, "COBADEFFXXX", b.String())

	b, err = s.LookupByBankCode(ctx, "GB", "NWBK")
	require.NoError(t, err)
	assert.Equal(t, "GB", b.CountryCode().String())
}
