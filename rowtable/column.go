package rowtable

import "fmt"

// Column describes one table column: the heading shown to the user and the
// accessor naming the row attribute it displays. The accessor doubles as the
// column's identifier and must be unique within a model.
type Column struct {
	Heading  string
	Accessor string

	// Type is the column's data type, used for sorting and export schemas.
	// The zero value TypeString is a safe default; values are re-typed by
	// inference where it matters.
	Type DataType
}

// NewColumn creates a column with an inferred-at-use type.
func NewColumn(heading, accessor string) Column {
	return Column{Heading: heading, Accessor: accessor}
}

// ZipColumns pairs headings with accessors positionally.
// Returns an error wrapping ErrInvalidColumn when the slices differ in
// length.
func ZipColumns(headings, accessors []string) ([]Column, error) {
	if len(headings) != len(accessors) {
		return nil, fmt.Errorf("%w: %d headings for %d accessors",
			ErrInvalidColumn, len(headings), len(accessors))
	}
	cols := make([]Column, len(headings))
	for i := range headings {
		cols[i] = Column{Heading: headings[i], Accessor: accessors[i]}
	}
	return cols, nil
}
