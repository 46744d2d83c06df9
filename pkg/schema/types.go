package schema

import "fmt"

// ColumnType enumerates the value types a schema column may declare.
type ColumnType string

const (
	TypeString   ColumnType = "string"
	TypeInteger  ColumnType = "integer"
	TypeFloat    ColumnType = "float"
	TypeBoolean  ColumnType = "boolean"
	TypeDatetime ColumnType = "datetime"
	TypeArray    ColumnType = "array"
	TypeObject   ColumnType = "object"
)

// ParseType converts a declared type name into a ColumnType.
// Type names come from trusted schema configuration, so anything outside the
// enum is a configuration error, not a data-quality finding.
func ParseType(name string) (ColumnType, error) {
	switch ColumnType(name) {
	case TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeDatetime, TypeArray, TypeObject:
		return ColumnType(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
}

// Column is one schema entry: a column name, its declared type and the
// normalized constraint set. Immutable once loaded.
type Column struct {
	Name    string
	Type    ColumnType
	Options Options
}

// Schema is the ordered list of column specs for one run. Declaration order
// is significant: findings are emitted in this order within each row.
type Schema []Column
