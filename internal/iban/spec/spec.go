// Package spec holds the per-country IBAN specification table: total length,
// BBAN structure notation, and the positional layout of the bank, branch, and
// account components.
//
// Specifications are prepared fully at ingestion: NewCountry compiles the
// BBAN notation once, so validation never recompiles matchers. The registry
// follows an initialize-once, read-many lifecycle and is safe for unrestricted
// concurrent reads after construction.
package spec

import (
	"context"
	"fmt"

	"schwifty/internal/iban/pattern"
	"schwifty/pkg/domain"
	"schwifty/pkg/platform/sentinel"
)

// Component names a positional slice of the BBAN.
type Component string

const (
	ComponentBankCode    Component = "bank_code"
	ComponentBranchCode  Component = "branch_code"
	ComponentAccountCode Component = "account_code"
)

// Range is a half-open character-offset range [Start, End) within the BBAN.
type Range struct {
	Start int
	End   int
}

// Len returns the width of the range in characters.
func (r Range) Len() int {
	return r.End - r.Start
}

// Slice extracts the range from a BBAN, clamping to its length so lenient
// parsing of short inputs never panics.
func (r Range) Slice(bban string) string {
	start, end := r.Start, r.End
	if start > len(bban) {
		start = len(bban)
	}
	if end > len(bban) {
		end = len(bban)
	}
	return bban[start:end]
}

// Country is an immutable, fully-prepared specification record for one
// country.
//
// Invariants:
//   - IBANLength is positive
//   - the matcher is compiled from BBANPattern at construction
//   - every component range lies within [0, IBANLength-4), the BBAN width
//     (4 accounts for the country code and check digits)
type Country struct {
	code        domain.CountryCode
	ibanLength  int
	bbanPattern string
	matcher     *pattern.Matcher
	positions   map[Component]Range
}

// NewCountry builds and prepares a specification record. The BBAN notation is
// compiled here, never later.
//
// Errors: pattern.ErrInvalidSpecification (possibly wrapped) for a malformed
// notation, non-positive length, or a component range outside the BBAN.
func NewCountry(code domain.CountryCode, ibanLength int, bbanPattern string, positions map[Component]Range) (*Country, error) {
	if ibanLength <= 0 {
		return nil, fmt.Errorf("%w: country %s: iban length %d must be positive", pattern.ErrInvalidSpecification, code, ibanLength)
	}
	matcher, err := pattern.Compile(bbanPattern)
	if err != nil {
		return nil, fmt.Errorf("country %s: %w", code, err)
	}
	bbanLen := ibanLength - 4
	prepared := make(map[Component]Range, len(positions))
	for component, r := range positions {
		if r.Start < 0 || r.End < r.Start || r.End > bbanLen {
			return nil, fmt.Errorf("%w: country %s: %s range [%d,%d) outside bban width %d",
				pattern.ErrInvalidSpecification, code, component, r.Start, r.End, bbanLen)
		}
		prepared[component] = r
	}
	return &Country{
		code:        code,
		ibanLength:  ibanLength,
		bbanPattern: bbanPattern,
		matcher:     matcher,
		positions:   prepared,
	}, nil
}

// MustCountry builds a specification record, panicking on error. For use in
// the seeded default table only.
func MustCountry(code domain.CountryCode, ibanLength int, bbanPattern string, positions map[Component]Range) *Country {
	c, err := NewCountry(code, ibanLength, bbanPattern, positions)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Country) Code() domain.CountryCode { return c.code }
func (c *Country) IBANLength() int          { return c.ibanLength }
func (c *Country) BBANPattern() string      { return c.bbanPattern }

// MatchBBAN reports whether a BBAN satisfies the compiled structure.
func (c *Country) MatchBBAN(bban string) bool {
	return c.matcher.MatchString(bban)
}

// Position returns the range of a component. Components absent from the
// layout (many countries have no branch code) report a zero-width range.
func (c *Country) Position(component Component) Range {
	return c.positions[component]
}

// Provider resolves country specifications. Implementations must be
// idempotent and side-effect-free; lookups return sentinel.ErrNotFound for
// countries absent from the table.
type Provider interface {
	Get(ctx context.Context, code domain.CountryCode) (*Country, error)
}

// Registry is the in-memory Provider. It is immutable after construction and
// therefore requires no locking.
type Registry struct {
	countries map[domain.CountryCode]*Country
}

// NewRegistry builds a registry from prepared records. Later duplicates win,
// mirroring registry file overlays in the source data.
func NewRegistry(countries ...*Country) *Registry {
	m := make(map[domain.CountryCode]*Country, len(countries))
	for _, c := range countries {
		m[c.code] = c
	}
	return &Registry{countries: m}
}

// Get implements Provider.
func (r *Registry) Get(_ context.Context, code domain.CountryCode) (*Country, error) {
	c, ok := r.countries[code]
	if !ok {
		return nil, fmt.Errorf("country %s: %w", code, sentinel.ErrNotFound)
	}
	return c, nil
}

// Countries returns the codes present in the table, for diagnostics.
func (r *Registry) Countries() []domain.CountryCode {
	out := make([]domain.CountryCode, 0, len(r.countries))
	for code := range r.countries {
		out = append(out, code)
	}
	return out
}
