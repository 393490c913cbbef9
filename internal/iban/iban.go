// Package iban implements the International Bank Account Number value type:
// construction from literal text, specification-driven validation, check
// digit generation, and positional component extraction.
package iban

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"schwifty/internal/iban/checksum"
	"schwifty/internal/iban/spec"
	"schwifty/pkg/domain"
	"schwifty/pkg/platform/sentinel"
)

// checksumPlaceholder marks a skeleton whose check digits are still to be
// computed.
const checksumPlaceholder = "??"

// compactRe is the character-level shape of a compact IBAN: letters-only
// country code, digit-only check digits, alphanumeric remainder.
var compactRe = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z0-9]*$`)

// IBAN is an immutable account identifier in compact form: country code (2),
// check digits (2), BBAN (rest). Values constructed without AllowInvalid have
// passed the full validation chain; lenient values may violate any invariant
// except the checksum-skeleton resolution.
type IBAN struct {
	compact  string
	provider spec.Provider
}

type options struct {
	allowInvalid bool
}

// Option adjusts construction behavior.
type Option func(*options)

// AllowInvalid skips the validation chain after parsing. Spec-dependent
// accessors and Validate remain available on the resulting value.
func AllowInvalid() Option {
	return func(o *options) { o.allowInvalid = true }
}

// New constructs an IBAN from literal text. Formatting whitespace is stripped
// and letters uppercased before parsing. Check digits given as "??" are
// treated as a skeleton and computed in place. Unless AllowInvalid is given,
// the full validation chain runs immediately and the first failure aborts
// construction; no partially-valid value is returned.
func New(ctx context.Context, provider spec.Provider, value string, opts ...Option) (*IBAN, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	compact := normalize(value)

	if len(compact) >= 4 && compact[2:4] == checksumPlaceholder {
		digits, err := checksum.ComputeDigits(compact[4:], compact[:2])
		if err != nil {
			// A skeleton we cannot numerify can never become a value, so this
			// fails even in lenient mode.
			return nil, fmt.Errorf("%w: %v", ErrInvalidCharacters, err)
		}
		compact = compact[:2] + digits + compact[4:]
	}

	v := &IBAN{compact: compact, provider: provider}
	if !o.allowInvalid {
		if err := v.Validate(ctx); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Generate synthesizes an IBAN for a country from a bank code and an account
// code. Both codes are left-padded with '0' to the widths the specification
// allots; the bank code field spans bank and branch positions, so a caller
// may pass both segments concatenated, right-aligned. The result goes through
// the literal construction path and is therefore fully validated.
//
// Errors: ErrUnknownCountry when the country is not in the table,
// ErrCodeTooLong when either code exceeds its field width.
func Generate(ctx context.Context, provider spec.Provider, countryCode, bankCode, accountCode string) (*IBAN, error) {
	cc, err := domain.ParseCountryCode(countryCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, countryCode)
	}
	country, err := provider.Get(ctx, cc)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, cc)
		}
		return nil, err
	}

	bankWidth := country.Position(spec.ComponentBankCode).Len() + country.Position(spec.ComponentBranchCode).Len()
	accountWidth := country.Position(spec.ComponentAccountCode).Len()

	if len(bankCode) > bankWidth {
		return nil, fmt.Errorf("%w: bank code %q exceeds maximum size %d", ErrCodeTooLong, bankCode, bankWidth)
	}
	if len(accountCode) > accountWidth {
		return nil, fmt.Errorf("%w: account code %q exceeds maximum size %d", ErrCodeTooLong, accountCode, accountWidth)
	}

	skeleton := string(cc) + checksumPlaceholder + leftPad(bankCode, bankWidth) + leftPad(accountCode, accountWidth)
	return New(ctx, provider, skeleton)
}

// Validate runs the validation chain in fixed order — characters, length,
// BBAN structure, checksum — stopping at the first failure. Each step fails
// independently with its own sentinel.
func (i *IBAN) Validate(ctx context.Context) error {
	if err := i.validateCharacters(); err != nil {
		return err
	}
	country, err := i.Spec(ctx)
	if err != nil {
		return err
	}
	if err := i.validateLength(country); err != nil {
		return err
	}
	if err := i.validateFormat(country); err != nil {
		return err
	}
	return i.validateChecksum()
}

func (i *IBAN) validateCharacters() error {
	if !compactRe.MatchString(i.compact) {
		return fmt.Errorf("%w: %q", ErrInvalidCharacters, i.compact)
	}
	return nil
}

func (i *IBAN) validateLength(country *spec.Country) error {
	if len(i.compact) != country.IBANLength() {
		return fmt.Errorf("%w: %q has %d characters, %s requires %d",
			ErrInvalidLength, i.compact, len(i.compact), country.Code(), country.IBANLength())
	}
	return nil
}

func (i *IBAN) validateFormat(country *spec.Country) error {
	if !country.MatchBBAN(i.BBAN()) {
		return fmt.Errorf("%w: %q does not match %q", ErrInvalidBBANStructure, i.BBAN(), country.BBANPattern())
	}
	return nil
}

func (i *IBAN) validateChecksum() error {
	ok, err := checksum.Validate(i.compact)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCharacters, err)
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidChecksum, i.compact)
	}
	return nil
}

// Compact returns the canonical compact form.
func (i *IBAN) Compact() string { return i.compact }

func (i *IBAN) String() string { return i.compact }

// CountryCode returns the leading two letters.
func (i *IBAN) CountryCode() domain.CountryCode {
	if len(i.compact) < 2 {
		return ""
	}
	return domain.CountryCode(i.compact[:2])
}

// ChecksumDigits returns characters 2-4 of the compact form.
func (i *IBAN) ChecksumDigits() string {
	if len(i.compact) < 4 {
		return ""
	}
	return i.compact[2:4]
}

// BBAN returns everything after the check digits.
func (i *IBAN) BBAN() string {
	if len(i.compact) < 4 {
		return ""
	}
	return i.compact[4:]
}

// Formatted renders the compact form in space-separated groups of four; the
// last group may be shorter.
func (i *IBAN) Formatted() string {
	var groups []string
	for start := 0; start < len(i.compact); start += 4 {
		end := start + 4
		if end > len(i.compact) {
			end = len(i.compact)
		}
		groups = append(groups, i.compact[start:end])
	}
	return strings.Join(groups, " ")
}

// Spec resolves this value's country specification. Lookups are idempotent
// and side-effect-free; resolution is deliberately lazy so lenient values
// with unknown countries can still be constructed and inspected.
func (i *IBAN) Spec(ctx context.Context) (*spec.Country, error) {
	country, err := i.provider.Get(ctx, i.CountryCode())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, i.CountryCode())
		}
		return nil, err
	}
	return country, nil
}

// BankCode extracts the bank code component per the country's layout.
func (i *IBAN) BankCode(ctx context.Context) (string, error) {
	return i.component(ctx, spec.ComponentBankCode)
}

// BranchCode extracts the branch code component; empty for countries whose
// layout has no branch segment.
func (i *IBAN) BranchCode(ctx context.Context) (string, error) {
	return i.component(ctx, spec.ComponentBranchCode)
}

// AccountCode extracts the account code component per the country's layout.
func (i *IBAN) AccountCode(ctx context.Context) (string, error) {
	return i.component(ctx, spec.ComponentAccountCode)
}

func (i *IBAN) component(ctx context.Context, c spec.Component) (string, error) {
	country, err := i.Spec(ctx)
	if err != nil {
		return "", err
	}
	return country.Position(c).Slice(i.BBAN()), nil
}

// normalize uppercases and strips all whitespace, the text-level formatting
// tolerated on input.
func normalize(value string) string {
	var sb strings.Builder
	sb.Grow(len(value))
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

func leftPad(code string, width int) string {
	if len(code) >= width {
		return code
	}
	return strings.Repeat("0", width-len(code)) + code
}
