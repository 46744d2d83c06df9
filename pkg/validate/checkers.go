package validate

import (
	"fmt"
	"math/big"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aretw0/sieve/pkg/schema"
)

// checker validates one raw cell value against its column's constraints.
// Checkers are pure: they return false for invalid data and never error.
// Anything that could genuinely fail (regex compilation, bound parsing) has
// already been resolved at schema-load time.
type checker interface {
	Name() string
	Valid(raw string, opts schema.Options) bool
}

// Check routes a raw value to the validator for the declared type.
// The empty string is handled here for every type: it is invalid when the
// column is required and valid-and-absent otherwise, so type checkers only
// ever see non-empty values.
//
// A type outside the enum is a configuration defect reported as an error up
// the chain, never as a per-row finding.
func Check(typ schema.ColumnType, raw string, opts schema.Options) (bool, error) {
	if raw == "" {
		return !opts.Required, nil
	}
	c, err := checkerFor(typ)
	if err != nil {
		return false, err
	}
	return c.Valid(raw, opts), nil
}

func checkerFor(typ schema.ColumnType) (checker, error) {
	switch typ {
	case schema.TypeString:
		return stringChecker{}, nil
	case schema.TypeInteger:
		return integerChecker{}, nil
	case schema.TypeFloat:
		return floatChecker{}, nil
	case schema.TypeBoolean:
		return booleanChecker{}, nil
	case schema.TypeDatetime:
		return datetimeChecker{}, nil
	case schema.TypeArray:
		return arrayChecker{}, nil
	case schema.TypeObject:
		return objectChecker{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", schema.ErrUnknownType, typ)
	}
}

type stringChecker struct{}

func (stringChecker) Name() string { return "string" }

func (stringChecker) Valid(raw string, opts schema.Options) bool {
	n := utf8.RuneCountInString(raw)
	if opts.MinLength != nil && n < *opts.MinLength {
		return false
	}
	if opts.MaxLength != nil && n > *opts.MaxLength {
		return false
	}
	if opts.AllowedValues != nil && !slices.Contains(opts.AllowedValues, raw) {
		return false
	}
	if opts.Pattern != nil && !opts.Pattern.MatchString(raw) {
		return false
	}
	return true
}

type integerChecker struct{}

func (integerChecker) Name() string { return "integer" }

func (integerChecker) Valid(raw string, opts schema.Options) bool {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	if opts.MinValue != nil && intCmp(v, *opts.MinValue) < 0 {
		return false
	}
	if opts.MaxValue != nil && intCmp(v, *opts.MaxValue) > 0 {
		return false
	}
	return true
}

// intCmp compares an integer to a float bound without converting the
// integer to float64, which rounds above 2^53 and would blur the
// inclusive-bound edge for large values.
func intCmp(v int64, bound float64) int {
	return new(big.Float).SetInt64(v).Cmp(big.NewFloat(bound))
}

type floatChecker struct{}

func (floatChecker) Name() string { return "float" }

func (floatChecker) Valid(raw string, opts schema.Options) bool {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return false
	}
	if opts.MinValue != nil && v < *opts.MinValue {
		return false
	}
	if opts.MaxValue != nil && v > *opts.MaxValue {
		return false
	}
	if opts.Precision != nil && fractionDigits(v) > *opts.Precision {
		return false
	}
	return true
}

// fractionDigits counts decimal digits in the parsed value's shortest
// round-trip rendering, not in the input text. "1.10" therefore counts one
// digit, and a binary-unrepresentable input can count more digits than were
// typed.
func fractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

type booleanChecker struct{}

func (booleanChecker) Name() string { return "boolean" }

func (booleanChecker) Valid(raw string, opts schema.Options) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	if len(opts.AllowedBools) > 0 && !slices.Contains(opts.AllowedBools, v) {
		return false
	}
	return true
}

type datetimeChecker struct{}

func (datetimeChecker) Name() string { return "datetime" }

func (datetimeChecker) Valid(raw string, opts schema.Options) bool {
	t, err := time.Parse(opts.Format, raw)
	if err != nil {
		return false
	}
	if opts.MinTime != nil && t.Before(*opts.MinTime) {
		return false
	}
	if opts.MaxTime != nil && t.After(*opts.MaxTime) {
		return false
	}
	return true
}

type arrayChecker struct{}

func (arrayChecker) Name() string { return "array" }

func (arrayChecker) Valid(raw string, opts schema.Options) bool {
	// Empty sub-values from doubled or trailing commas are counted and
	// checked, not filtered.
	parts := strings.Split(raw, ",")
	if opts.MinLength != nil && len(parts) < *opts.MinLength {
		return false
	}
	if opts.MaxLength != nil && len(parts) > *opts.MaxLength {
		return false
	}
	if opts.AllowedValues != nil {
		for _, p := range parts {
			if !slices.Contains(opts.AllowedValues, p) {
				return false
			}
		}
	}
	return true
}

// objectChecker only backs the presence semantics of the object type: the
// required rule upstream decides emptiness, so any non-empty value passes.
type objectChecker struct{}

func (objectChecker) Name() string { return "object" }

func (objectChecker) Valid(string, schema.Options) bool { return true }
