package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asklund/fyne-rowtable/internal/filter"
	"github.com/asklund/fyne-rowtable/rowtable"
)

var testColumns = []rowtable.Column{
	{Heading: "Name", Accessor: "name"},
	{Heading: "Age", Accessor: "age"},
	{Heading: "City", Accessor: "city"},
}

var testAccessors = []string{"name", "age", "city"}

func personValues(name string, age int, city string) []rowtable.Value {
	return []rowtable.Value{
		rowtable.ValueOf(name),
		rowtable.ValueOf(age),
		rowtable.ValueOf(city),
	}
}

func mustParse(t *testing.T, query string) *filter.Query {
	t.Helper()
	q, err := filter.ParseQuery(query, testColumns)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q
}

func evaluate(t *testing.T, q *filter.Query, row []rowtable.Value) bool {
	t.Helper()
	pass, err := q.Evaluate(row, testAccessors)
	require.NoError(t, err)
	return pass
}

func TestParseQueryEmpty(t *testing.T) {
	q, err := filter.ParseQuery("   ", testColumns)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestQueryEquality(t *testing.T) {
	q := mustParse(t, `name = "Ana"`)
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.True(t, evaluate(t, q, personValues("ana", 36, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Bo", 44, "Lund")))
}

func TestQueryNotEqual(t *testing.T) {
	q := mustParse(t, "city != Lund")
	assert.False(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Ystad")))
}

func TestQueryNumericComparison(t *testing.T) {
	q := mustParse(t, "age >= 36")
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.True(t, evaluate(t, q, personValues("Bo", 44, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Cy", 29, "Lund")))

	q = mustParse(t, "age < 30")
	assert.True(t, evaluate(t, q, personValues("Cy", 29, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
}

func TestQueryContains(t *testing.T) {
	q := mustParse(t, "name ~ an")
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Bo", 44, "Lund")))
}

func TestQueryBareTermSearchesAllColumns(t *testing.T) {
	q := mustParse(t, "lund")
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Bo", 44, "Ystad")))
}

func TestQueryLogicOps(t *testing.T) {
	q := mustParse(t, "age > 30 AND city = Lund")
	assert.True(t, evaluate(t, q, personValues("Ana", 36, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Ana", 36, "Ystad")))
	assert.False(t, evaluate(t, q, personValues("Cy", 29, "Lund")))

	q = mustParse(t, "age > 40 OR city = Lund")
	assert.True(t, evaluate(t, q, personValues("Bo", 44, "Ystad")))
	assert.True(t, evaluate(t, q, personValues("Cy", 29, "Lund")))
	assert.False(t, evaluate(t, q, personValues("Cy", 29, "Ystad")))
}

func TestQueryMatchesHeadingName(t *testing.T) {
	// Users type what they see, so headings resolve too.
	q := mustParse(t, "Age > 40")
	assert.True(t, evaluate(t, q, personValues("Bo", 44, "Lund")))
}

func TestQueryUnknownColumn(t *testing.T) {
	_, err := filter.ParseQuery("salary > 100", testColumns)
	assert.ErrorIs(t, err, rowtable.ErrInvalidFilter)
}

func TestQueryLeadingOperator(t *testing.T) {
	_, err := filter.ParseQuery("AND age > 30", testColumns)
	assert.ErrorIs(t, err, rowtable.ErrInvalidFilter)
}

func TestQueryOperatorInsideWordIsLiteral(t *testing.T) {
	// "Sandra" contains "and" without word boundaries and stays one term.
	q := mustParse(t, "sandra")
	assert.True(t, evaluate(t, q, personValues("Sandra", 33, "Lund")))
}

func TestQueryDescription(t *testing.T) {
	q := mustParse(t, "age > 30")
	assert.Equal(t, "age > 30", q.Description())
}
