// Package numfmt coerces locale-formatted numeric text published by grid
// operators into floats.
package numfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a token that could not be coerced into a number.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("not a numeric value: %q", e.Raw)
}

// Normalizer converts source-formatted number strings into floats.
// ZeroSentinels lists placeholder tokens the source publishes to mean
// "no value", which normalize to 0 (e.g. "-" on Statnett overview and
// AESO interchange tables). Sources without that convention leave it
// empty, so "-" fails to parse instead of silently becoming zero.
type Normalizer struct {
	ZeroSentinels []string
}

func clean(raw string) string {
	raw = strings.Trim(raw, " \t\n")
	// U+00A0 and plain spaces are thousands grouping
	raw = strings.ReplaceAll(raw, " ", "")
	return strings.ReplaceAll(raw, " ", "")
}

// Float parses raw as a decimal number after stripping separator
// characters, mapping configured sentinels to 0.
func (n Normalizer) Float(raw string) (float64, error) {
	cleaned := clean(raw)
	for _, s := range n.ZeroSentinels {
		if cleaned == s {
			return 0, nil
		}
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ParseError{Raw: raw}
	}
	return v, nil
}

// IsNumeric reports whether Float would succeed on raw.
func (n Normalizer) IsNumeric(raw string) bool {
	_, err := n.Float(raw)
	return err == nil
}
