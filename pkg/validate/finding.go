package validate

// SourceRow marks a finding that applies to a whole source rather than to a
// single row, such as an aggregate mismatch between two files.
const SourceRow = -1

// Finding is one structured data-quality result. Findings are recoverable by
// definition: they are collected, never raised, and one failing cell never
// stops the run.
type Finding struct {
	Row     int // zero-based row ordinal, or SourceRow
	Column  string
	Message string
}
