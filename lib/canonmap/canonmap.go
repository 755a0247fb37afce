// Package canonmap maps source-specific field labels onto the canonical
// record shapes consumed by the aggregation pipeline.
package canonmap

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"gridwatch-backend/lib/numfmt"
)

// FieldNotFoundError reports a source field referenced by a mapping that
// the extracted payload does not contain.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("source field %q absent from extracted values", e.Field)
}

// UnsupportedPairError reports a requested region pair with no
// interconnection in the source's data, which means the caller asked for
// an unmodeled exchange.
type UnsupportedPairError struct {
	PairKey string
}

func (e *UnsupportedPairError) Error() string {
	return fmt.Sprintf("no interconnection data for pair %q in this source", e.PairKey)
}

// FuelRule maps one or more source fields onto a canonical fuel bucket.
// Multiple fields compose by summation (e.g. thermal + not specified
// feeding the unknown bucket).
type FuelRule struct {
	Fuel   Fuel
	Fields []string
}

// Production assembles a fuel mix from extracted field values. Every
// referenced field must exist in fields; a field whose value will not
// parse as a number drops its whole fuel bucket from the mix rather than
// failing the record or defaulting to zero.
func Production(fields map[string]string, rules []FuelRule, num numfmt.Normalizer) (FuelMix, error) {
	var mix FuelMix
	for _, rule := range rules {
		values := make([]float64, 0, len(rule.Fields))
		parsed := true
		for _, field := range rule.Fields {
			raw, present := fields[field]
			if !present {
				return FuelMix{}, &FieldNotFoundError{Field: field}
			}
			v, err := num.Float(raw)
			if err != nil {
				parsed = false
				break
			}
			values = append(values, v)
		}
		if !parsed {
			continue
		}
		for _, v := range values {
			if err := mix.Add(rule.Fuel, v); err != nil {
				return FuelMix{}, err
			}
		}
	}
	return mix, nil
}

// Prices emits one record per row whose price cell parses as a number,
// sorted ascending by instant regardless of source row order. rows maps
// a table's row label to its price cell; at resolves a row label to its
// instant and its failure aborts the call, since an unparseable label
// means the table's structure changed.
func Prices(
	rows map[string]string,
	region, currency, source string,
	at func(label string) (time.Time, error),
	num numfmt.Normalizer,
) ([]PriceRecord, error) {
	var out []PriceRecord
	for label, raw := range rows {
		price, err := num.Float(raw)
		if err != nil {
			// a non-numeric price means the hour is not settled yet
			var parseErr *numfmt.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		instant, err := at(label)
		if err != nil {
			return nil, fmt.Errorf("price row %q: %w", label, err)
		}
		out = append(out, PriceRecord{
			Region:   region,
			At:       instant,
			Currency: currency,
			Price:    price,
			Source:   source,
		})
	}
	slices.SortFunc(out, func(a, b PriceRecord) int {
		return a.At.Compare(b.At)
	})
	return out, nil
}

// Flow resolves the interconnection field for a region pair and emits
// its net flow. The sign is kept exactly as the source publishes it for
// the sorted pair; callers wanting the opposite convention negate
// explicitly.
func Flow(
	fields map[string]string,
	regionA, regionB string,
	pairs map[string]string,
	at time.Time,
	source string,
	num numfmt.Normalizer,
) (FlowRecord, error) {
	key := PairKey(regionA, regionB)
	field, ok := pairs[key]
	if !ok {
		return FlowRecord{}, &UnsupportedPairError{PairKey: key}
	}
	raw, ok := fields[field]
	if !ok {
		return FlowRecord{}, &FieldNotFoundError{Field: field}
	}
	net, err := num.Float(raw)
	if err != nil {
		return FlowRecord{}, fmt.Errorf("pair %q: %w", key, err)
	}
	return FlowRecord{
		SortedPairKey: key,
		At:            at,
		NetFlow:       net,
		Source:        source,
	}, nil
}
