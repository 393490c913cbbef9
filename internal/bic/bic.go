// Package bic provides the Bank Identifier Code value type and the directory
// abstraction the IBAN service uses to resolve a BIC from a country code and
// bank code.
package bic

import (
	"context"
	"errors"
	"fmt"

	"schwifty/pkg/domain"
)

// ErrInvalidBIC indicates text that does not have the ISO 9362 shape.
var ErrInvalidBIC = errors.New("invalid bic")

// BIC is an ISO 9362 Bank Identifier Code: 4-letter bank code, 2-letter
// country code, 2-character location code, and an optional 3-character branch
// code (8 or 11 characters total).
type BIC struct {
	code string
}

// Parse constructs a BIC from external input, validating length and character
// shape. Lowercase input is uppercased.
func Parse(value string) (BIC, error) {
	code := make([]byte, len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		code[i] = c
	}
	s := string(code)

	if len(s) != 8 && len(s) != 11 {
		return BIC{}, fmt.Errorf("%w: %q must be 8 or 11 characters", ErrInvalidBIC, value)
	}
	for i := 0; i < 6; i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return BIC{}, fmt.Errorf("%w: %q position %d must be a letter", ErrInvalidBIC, value, i)
		}
	}
	for i := 6; i < len(s); i++ {
		if !isAlnumUpper(s[i]) {
			return BIC{}, fmt.Errorf("%w: %q position %d must be alphanumeric", ErrInvalidBIC, value, i)
		}
	}
	return BIC{code: s}, nil
}

// MustParse constructs a BIC, panicking on malformed input. For seeded
// directory data only.
func MustParse(value string) BIC {
	b, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return b
}

func (b BIC) String() string { return b.code }

// IsZero reports whether the value is the uninitialized BIC.
func (b BIC) IsZero() bool { return b.code == "" }

// BankCode returns the leading 4-letter institution code.
func (b BIC) BankCode() string { return b.code[:4] }

// CountryCode returns the embedded country code.
func (b BIC) CountryCode() domain.CountryCode {
	return domain.CountryCode(b.code[4:6])
}

// LocationCode returns the 2-character location code.
func (b BIC) LocationCode() string { return b.code[6:8] }

// BranchCode returns the branch code, or "" for 8-character values.
func (b BIC) BranchCode() string {
	if len(b.code) == 11 {
		return b.code[8:]
	}
	return ""
}

func isAlnumUpper(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Directory resolves the BIC associated with a bank code. Implementations
// return sentinel.ErrNotFound (optionally wrapped) when no association
// exists; all other errors indicate infrastructure trouble.
type Directory interface {
	LookupByBankCode(ctx context.Context, countryCode domain.CountryCode, bankCode string) (BIC, error)
}
