// Package checksum implements the ISO 7064 MOD 97-10 arithmetic used by IBAN
// check digits: an alphanumeric-to-numeric transform followed by mod-97
// arithmetic over arbitrary-precision integers.
package checksum

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// alphabet maps each supported character to its numeric value: digits to
// themselves, A-Z to 10-35.
const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrInvalidCharacter indicates input outside [0-9A-Z].
var ErrInvalidCharacter = errors.New("invalid character")

var (
	bigMod97 = big.NewInt(97)
	bigHundo = big.NewInt(100)
)

// Numerify converts s into the ISO 7064 numeric form: every character is
// replaced by its decimal value (0-35) and the resulting digit sequence is
// read as one unsigned decimal integer. The expanded form routinely exceeds
// 64-bit range, hence the big.Int result.
//
// Errors: ErrInvalidCharacter (wrapped with the offending rune) for any
// character outside [0-9A-Z].
func Numerify(s string) (*big.Int, error) {
	var sb strings.Builder
	sb.Grow(len(s) * 2)
	for _, c := range s {
		idx := strings.IndexRune(alphabet, c)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidCharacter, c, s)
		}
		fmt.Fprintf(&sb, "%d", idx)
	}
	n, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		// Only reachable on empty input; zero keeps the arithmetic total.
		return big.NewInt(0), nil
	}
	return n, nil
}

// ComputeDigits derives the two check digits for a BBAN and country code:
// 98 - (numerify(bban+countryCode) * 100) mod 97, zero-padded to exactly two
// decimal digits. The result range is 2-98, so single-digit results such as 7
// render as "07".
func ComputeDigits(bban, countryCode string) (string, error) {
	n, err := Numerify(bban + countryCode)
	if err != nil {
		return "", err
	}
	n.Mul(n, bigHundo)
	n.Mod(n, bigMod97)
	return fmt.Sprintf("%02d", 98-n.Int64()), nil
}

// Validate reports whether the check digits of a compact IBAN are consistent.
// Per ISO 7064 the first four characters (country code and check digits) are
// moved behind the BBAN before the mod-97 test; the sum must leave remainder 1.
func Validate(compact string) (bool, error) {
	if len(compact) < 4 {
		return false, nil
	}
	n, err := Numerify(compact[4:] + compact[:4])
	if err != nil {
		return false, err
	}
	return n.Mod(n, bigMod97).Int64() == 1, nil
}
