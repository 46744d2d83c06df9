package validate

import (
	"regexp"
	"testing"
	"time"

	"github.com/aretw0/sieve/pkg/schema"
)

func iptr(v int) *int         { return &v }
func fptr(v float64) *float64 { return &v }
func tptr(v time.Time) *time.Time {
	return &v
}

func mustDate(t *testing.T, layout, s string) time.Time {
	t.Helper()
	v, err := time.Parse(layout, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// prefix mirrors how the schema loader compiles the regex option: anchored
// at the start of the value only.
func prefix(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + pattern + `)`)
}

func TestCheck_EmptyValue(t *testing.T) {
	// The empty string never reaches a type checker: it is invalid only
	// when the column is required.
	for _, typ := range []schema.ColumnType{
		schema.TypeString, schema.TypeInteger, schema.TypeFloat,
		schema.TypeBoolean, schema.TypeDatetime, schema.TypeArray, schema.TypeObject,
	} {
		ok, err := Check(typ, "", schema.Options{})
		if err != nil || !ok {
			t.Errorf("Check(%s, \"\") = %v, %v, want valid", typ, ok, err)
		}
		ok, err = Check(typ, "", schema.Options{Required: true})
		if err != nil || ok {
			t.Errorf("Check(%s, \"\", required) = %v, %v, want invalid", typ, ok, err)
		}
	}
}

func TestCheck_UnknownType(t *testing.T) {
	_, err := Check(schema.ColumnType("decimal"), "1", schema.Options{})
	if err == nil {
		t.Fatal("Check() should return an error for a type outside the enum")
	}
}

func TestStringChecker(t *testing.T) {
	tests := []struct {
		name  string
		value string
		opts  schema.Options
		want  bool
	}{
		{"no constraints", "anything", schema.Options{}, true},
		{"min length ok", "abc", schema.Options{MinLength: iptr(3)}, true},
		{"min length short", "ab", schema.Options{MinLength: iptr(3)}, false},
		{"max length ok", "abc", schema.Options{MaxLength: iptr(3)}, true},
		{"max length long", "abcd", schema.Options{MaxLength: iptr(3)}, false},
		{"length counts runes", "héllo", schema.Options{MaxLength: iptr(5)}, true},
		{"allowed member", "red", schema.Options{AllowedValues: []string{"red", "blue"}}, true},
		{"allowed outsider", "green", schema.Options{AllowedValues: []string{"red", "blue"}}, false},
		{"prefix match", "ABC", schema.Options{Pattern: prefix("^A")}, true},
		{"full anchor fails on longer value", "ABC", schema.Options{Pattern: prefix("^A$")}, false},
		{"prefix not full match", "AB-junk", schema.Options{Pattern: prefix("AB")}, true},
	}
	for _, tt := range tests {
		if got := (stringChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("%s: Valid(%q) = %v, want %v", tt.name, tt.value, got, tt.want)
		}
	}
}

func TestIntegerChecker(t *testing.T) {
	bounds := schema.Options{MinValue: fptr(0), MaxValue: fptr(100)}
	tests := []struct {
		value string
		opts  schema.Options
		want  bool
	}{
		{"42", schema.Options{}, true},
		{"-7", schema.Options{}, true},
		{"3.5", schema.Options{}, false},
		{"abc", schema.Options{}, false},
		{"0", bounds, true},   // inclusive lower bound
		{"100", bounds, true}, // inclusive upper bound
		{"-1", bounds, false},
		{"101", bounds, false},
	}
	for _, tt := range tests {
		if got := (integerChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestIntegerChecker_LargeBounds(t *testing.T) {
	// 2^53+1 rounds to 2^53 as a float64; the comparison must still see it
	// above a 2^53 upper bound.
	huge := schema.Options{MaxValue: fptr(9007199254740992)}
	tests := []struct {
		value string
		opts  schema.Options
		want  bool
	}{
		{"9007199254740992", huge, true},
		{"9007199254740993", huge, false},
		{"9223372036854775807", schema.Options{MinValue: fptr(0)}, true},
		{"-9223372036854775808", schema.Options{MaxValue: fptr(0)}, true},
		{"-9007199254740993", schema.Options{MinValue: fptr(-9007199254740992)}, false},
	}
	for _, tt := range tests {
		if got := (integerChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFloatChecker(t *testing.T) {
	bounds := schema.Options{MinValue: fptr(0.5), MaxValue: fptr(9.5)}
	tests := []struct {
		value string
		opts  schema.Options
		want  bool
	}{
		{"3.14", schema.Options{}, true},
		{"10", schema.Options{}, true},
		{"abc", schema.Options{}, false},
		{"0.5", bounds, true},
		{"9.5", bounds, true},
		{"0.49", bounds, false},
		{"9.51", bounds, false},
	}
	for _, tt := range tests {
		if got := (floatChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFloatChecker_Precision(t *testing.T) {
	// Precision is checked on the parsed value's shortest round-trip
	// rendering, not on the input text. This is a deliberate compatibility
	// choice: "1.10" re-renders as "1.1" and passes precision 1, and a
	// whole-number float counts zero fraction digits.
	tests := []struct {
		value     string
		precision int
		want      bool
	}{
		{"1.25", 2, true},
		{"1.256", 2, false},
		{"1.10", 1, true}, // trailing zero disappears in the rendering
		{"2", 0, true},
		{"2.0", 0, true}, // parses to a whole number, renders without a dot
		{"0.1", 1, true}, // shortest rendering stays "0.1"
	}
	for _, tt := range tests {
		opts := schema.Options{Precision: iptr(tt.precision)}
		if got := (floatChecker{}).Valid(tt.value, opts); got != tt.want {
			t.Errorf("Valid(%q, precision=%d) = %v, want %v", tt.value, tt.precision, got, tt.want)
		}
	}
}

func TestBooleanChecker(t *testing.T) {
	onlyTrue := schema.Options{AllowedBools: []bool{true}}
	tests := []struct {
		value string
		opts  schema.Options
		want  bool
	}{
		{"true", schema.Options{}, true},
		{"True", schema.Options{}, true},
		{"false", schema.Options{}, true},
		{"0", schema.Options{}, true},
		{"yes", schema.Options{}, false},
		{"true", onlyTrue, true},
		{"false", onlyTrue, false},
	}
	for _, tt := range tests {
		if got := (booleanChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestDatetimeChecker(t *testing.T) {
	const layout = "2006-01-02"
	opts := schema.Options{
		Format:  layout,
		MinTime: tptr(mustDate(t, layout, "2017-01-01")),
		MaxTime: tptr(mustDate(t, layout, "2017-12-31")),
	}
	tests := []struct {
		value string
		want  bool
	}{
		{"2017-06-15", true},
		{"2017-01-01", true}, // inclusive bounds
		{"2017-12-31", true},
		{"2016-12-31", false},
		{"2018-01-01", false},
		{"15/06/2017", false}, // wrong layout
		{"not a date", false},
	}
	for _, tt := range tests {
		if got := (datetimeChecker{}).Valid(tt.value, opts); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestArrayChecker(t *testing.T) {
	tests := []struct {
		name  string
		value string
		opts  schema.Options
		want  bool
	}{
		{"count within bounds", "a,b,c", schema.Options{MinLength: iptr(2), MaxLength: iptr(3)}, true},
		{"too many elements", "a,b,c", schema.Options{MaxLength: iptr(2)}, false},
		{"too few elements", "a", schema.Options{MinLength: iptr(2)}, false},
		{"all members allowed", "a,b", schema.Options{AllowedValues: []string{"a", "b", "c"}}, true},
		{"one outsider", "a,x", schema.Options{AllowedValues: []string{"a", "b", "c"}}, false},
		// A trailing comma produces an empty element that is counted and
		// checked like any other.
		{"trailing comma counts", "a,b,", schema.Options{MaxLength: iptr(2)}, false},
		{"trailing comma not allowed", "a,", schema.Options{AllowedValues: []string{"a"}}, false},
	}
	for _, tt := range tests {
		if got := (arrayChecker{}).Valid(tt.value, tt.opts); got != tt.want {
			t.Errorf("%s: Valid(%q) = %v, want %v", tt.name, tt.value, got, tt.want)
		}
	}
}

func TestObjectChecker(t *testing.T) {
	if !(objectChecker{}).Valid("anything", schema.Options{}) {
		t.Error("object checker should accept any non-empty value")
	}
}
