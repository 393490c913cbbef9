package domain

import (
	dErrors "schwifty/pkg/domain-errors"
)

// CountryCode is a domain value holding a two-letter uppercase ISO 3166-1
// country code.
//
// Usage: construct via ParseCountryCode at trust boundaries to enforce the
// shape; direct casting bypasses validation.
type CountryCode string

// ParseCountryCode constructs a CountryCode from external input. Lowercase
// input is accepted and normalized; anything that is not exactly two ASCII
// letters is rejected.
//
// Errors: returns CodeInvalidInput when the value is empty or malformed; no
// other errors are expected.
func ParseCountryCode(s string) (CountryCode, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "country code cannot be empty")
	}
	if len(s) != 2 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "country code must be exactly 2 letters")
	}
	out := [2]byte{}
	for i := 0; i < 2; i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out[i] = c
		case c >= 'a' && c <= 'z':
			out[i] = c - 'a' + 'A'
		default:
			return "", dErrors.New(dErrors.CodeInvalidInput, "country code must contain only letters")
		}
	}
	return CountryCode(out[:]), nil
}

// IsValid checks the already-constructed value still satisfies the invariant.
func (c CountryCode) IsValid() bool {
	if len(c) != 2 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' && c[1] >= 'A' && c[1] <= 'Z'
}

// String returns the string representation of the country code.
func (c CountryCode) String() string {
	return string(c)
}
