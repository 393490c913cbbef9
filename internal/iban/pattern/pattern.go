// Package pattern compiles the compact BBAN structure notation used by the
// IBAN registry (for example "8!n10!n") into anchored matchers.
//
// The notation is a sequence of clauses <count>[!]<type>. A clause with "!"
// matches exactly count repetitions; without it, 1 to count repetitions.
// Recognized types: n (digit), a (uppercase letter), c (alphanumeric),
// e (space).
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidSpecification indicates a malformed BBAN structure notation. It
// should only arise from a corrupt specification table, never from end-user
// input.
var ErrInvalidSpecification = errors.New("invalid specification")

// classes maps a clause type character to its character class.
var classes = map[byte]string{
	'n': `\d`,
	'a': `[A-Z]`,
	'c': `[A-Za-z0-9]`,
	'e': ` `,
}

// clauseRe splits the notation into clauses; Compile verifies the clauses
// cover the whole input so trailing garbage cannot slip through.
var clauseRe = regexp.MustCompile(`([0-9]+)(!)?([a-z])`)

// Matcher tests whether a string satisfies a compiled BBAN structure. The
// match is anchored to the full string; partial matches never succeed.
type Matcher struct {
	re     *regexp.Regexp
	source string
}

// MatchString reports whether s satisfies the whole pattern.
func (m *Matcher) MatchString(s string) bool {
	return m.re.MatchString(s)
}

// Source returns the notation the matcher was compiled from.
func (m *Matcher) Source() string {
	return m.source
}

// Compile converts a BBAN structure notation into an anchored Matcher.
//
// Errors: ErrInvalidSpecification (wrapped with position context) when a
// clause has an unrecognized type character, a non-positive count, or the
// notation contains text that is not part of any clause.
func Compile(spec string) (*Matcher, error) {
	if spec == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidSpecification)
	}

	var sb strings.Builder
	sb.WriteString("^")

	rest := spec
	for len(rest) > 0 {
		loc := clauseRe.FindStringSubmatchIndex(rest)
		if loc == nil || loc[0] != 0 {
			return nil, fmt.Errorf("%w: unparseable clause at %q in pattern %q", ErrInvalidSpecification, rest, spec)
		}
		groups := clauseRe.FindStringSubmatch(rest)
		count, err := strconv.Atoi(groups[1])
		if err != nil || count <= 0 {
			return nil, fmt.Errorf("%w: repetition count %q must be a positive integer in pattern %q", ErrInvalidSpecification, groups[1], spec)
		}
		class, ok := classes[groups[3][0]]
		if !ok {
			return nil, fmt.Errorf("%w: unknown type character %q in pattern %q", ErrInvalidSpecification, groups[3], spec)
		}
		sb.WriteString(class)
		if groups[2] == "!" {
			fmt.Fprintf(&sb, "{%d}", count)
		} else {
			fmt.Fprintf(&sb, "{1,%d}", count)
		}
		rest = rest[loc[1]:]
	}

	sb.WriteString("$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpecification, err)
	}
	return &Matcher{re: re, source: spec}, nil
}
