package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Options is the normalized constraint set for one column. A nil pointer
// field means the schema author left that constraint unset, which validators
// read as "no constraint". Bounds and patterns are resolved once here, at
// load time; validators never reinterpret the raw bag per call.
type Options struct {
	Required      bool
	MinLength     *int
	MaxLength     *int
	MinValue      *float64
	MaxValue      *float64
	MinTime       *time.Time
	MaxTime       *time.Time
	AllowedValues []string
	AllowedBools  []bool
	Pattern       *regexp.Regexp
	Format        string
	Precision     *int
}

// rawOptions mirrors the constraint bag as it appears in the schema file.
// min_value/max_value stay untyped until the declared type decides whether
// they are numbers or formatted dates.
type rawOptions struct {
	Required      bool     `mapstructure:"required"`
	MinLength     *int     `mapstructure:"min_length"`
	MaxLength     *int     `mapstructure:"max_length"`
	MinValue      any      `mapstructure:"min_value"`
	MaxValue      any      `mapstructure:"max_value"`
	AllowedValues []string `mapstructure:"allowed_values"`
	Regex         *string  `mapstructure:"regex"`
	Format        string   `mapstructure:"format"`
	Precision     *int     `mapstructure:"precision"`
}

func normalizeOptions(typ ColumnType, bag map[string]any) (Options, error) {
	var raw rawOptions
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Options{}, err
	}
	if bag == nil {
		bag = map[string]any{}
	}
	if err := dec.Decode(bag); err != nil {
		return Options{}, fmt.Errorf("invalid options: %w", err)
	}

	opts := Options{
		Required:      raw.Required,
		MinLength:     raw.MinLength,
		MaxLength:     raw.MaxLength,
		AllowedValues: raw.AllowedValues,
		Format:        raw.Format,
		Precision:     raw.Precision,
	}

	if raw.Regex != nil {
		// Match-from-start semantics: the pattern constrains a prefix of the
		// value, not the whole string.
		re, err := regexp.Compile(`\A(?:` + *raw.Regex + `)`)
		if err != nil {
			return Options{}, fmt.Errorf("invalid regex %q: %w", *raw.Regex, err)
		}
		opts.Pattern = re
	}

	switch typ {
	case TypeInteger, TypeFloat:
		if opts.MinValue, err = numericBound("min_value", raw.MinValue); err != nil {
			return Options{}, err
		}
		if opts.MaxValue, err = numericBound("max_value", raw.MaxValue); err != nil {
			return Options{}, err
		}
	case TypeDatetime:
		if opts.Format == "" {
			return Options{}, ErrMissingFormat
		}
		if opts.MinTime, err = timeBound("min_value", raw.MinValue, opts.Format); err != nil {
			return Options{}, err
		}
		if opts.MaxTime, err = timeBound("max_value", raw.MaxValue, opts.Format); err != nil {
			return Options{}, err
		}
	case TypeBoolean:
		// allowed_values holds the literals "True"/"False"; any other
		// literal maps to false.
		for _, v := range raw.AllowedValues {
			opts.AllowedBools = append(opts.AllowedBools, v == "True")
		}
	}

	return opts, nil
}

func numericBound(name string, v any) (*float64, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case int:
		f := float64(b)
		return &f, nil
	case int64:
		f := float64(b)
		return &f, nil
	case float64:
		return &b, nil
	case string:
		f, err := strconv.ParseFloat(b, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number: %q", name, b)
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("%s: unsupported bound %v (%T)", name, v, v)
	}
}

func timeBound(name string, v any, layout string) (*time.Time, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: datetime bound must be a string, got %T", name, v)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}
