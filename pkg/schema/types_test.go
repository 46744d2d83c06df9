package schema

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		name    string
		want    ColumnType
		wantErr bool
	}{
		{"string", TypeString, false},
		{"integer", TypeInteger, false},
		{"float", TypeFloat, false},
		{"boolean", TypeBoolean, false},
		{"datetime", TypeDatetime, false},
		{"array", TypeArray, false},
		{"object", TypeObject, false},
		{"decimal", "", true},
		{"", "", true},
		{"String", "", true}, // names are exact-match
	}

	for _, tt := range tests {
		got, err := ParseType(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownType) {
				t.Errorf("ParseType(%q) error = %v, want ErrUnknownType", tt.name, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
