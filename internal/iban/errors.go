package iban

import (
	"errors"

	"schwifty/internal/iban/pattern"
)

// Failure taxonomy for construction, validation, and generation. All are
// caller-visible and non-retryable; none are logged or swallowed internally.
// Wrapped occurrences carry the offending value and the expected shape, so
// match with errors.Is.
var (
	// ErrUnknownCountry: the country code is absent from the specification
	// table. Raised during generation and spec-dependent validation steps.
	ErrUnknownCountry = errors.New("unknown country code")

	// ErrInvalidSpecification: malformed BBAN structure notation. Only arises
	// from a corrupt specification table, not from end-user input.
	ErrInvalidSpecification = pattern.ErrInvalidSpecification

	// ErrCodeTooLong: a generation input exceeds the country's field width.
	ErrCodeTooLong = errors.New("code exceeds field width")

	// The four independent validation failures, in chain order.
	ErrInvalidCharacters    = errors.New("invalid characters in iban")
	ErrInvalidLength        = errors.New("invalid iban length")
	ErrInvalidBBANStructure = errors.New("invalid bban structure")
	ErrInvalidChecksum      = errors.New("invalid checksum digits")
)
