package schema

import "errors"

var (
	// ErrUnknownType signals a declared type outside the supported enum.
	ErrUnknownType = errors.New("unknown column type")

	// ErrMissingFormat signals a datetime column without a format layout.
	ErrMissingFormat = errors.New("datetime column requires a format")

	// ErrDuplicateColumn signals two schema entries sharing a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
)
