package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"schwifty/internal/bic"
	"schwifty/pkg/platform/sentinel"
)

type MemoryDirectorySuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func TestMemoryDirectorySuite(t *testing.T) {
	suite.Run(t, new(MemoryDirectorySuite))
}

func (s *MemoryDirectorySuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func (s *MemoryDirectorySuite) TestLookups() {
	s.Run("finds registered association", func() {
		want := bic.MustParse("COBADEFFXXX")
		s.Require().NoError(s.store.Put(s.ctx, "DE", "37040044", want))

		got, err := s.store.LookupByBankCode(s.ctx, "DE", "37040044")
		s.Require().NoError(err)
		s.Equal(want, got)
	})

	s.Run("unknown bank code yields ErrNotFound", func() {
		_, err := s.store.LookupByBankCode(s.ctx, "DE", "99999999")
		s.Require().Error(err)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("same bank code under another country is distinct", func() {
		s.Require().NoError(s.store.Put(s.ctx, "DE", "37040044", bic.MustParse("COBADEFFXXX")))

		_, err := s.store.LookupByBankCode(s.ctx, "AT", "37040044")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("put replaces an existing association", func() {
		s.Require().NoError(s.store.Put(s.ctx, "GB", "NWBK", bic.MustParse("NWBKGB2L")))
		s.Require().NoError(s.store.Put(s.ctx, "GB", "NWBK", bic.MustParse("NWBKGB2LXXX")))

		got, err := s.store.LookupByBankCode(s.ctx, "GB", "NWBK")
		s.Require().NoError(err)
		s.Equal("NWBKGB2LXXX", got.String())
	})
}
