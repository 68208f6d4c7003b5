package rowtable

// Filter selects rows for display. Implementations live in the filter
// subpackages; the model only evaluates.
type Filter interface {
	// Evaluate reports whether a row passes the filter. The row's values
	// are given in column order together with the matching accessors.
	Evaluate(row []Value, accessors []string) (bool, error)

	// Description returns a human-readable summary for status displays.
	Description() string
}
