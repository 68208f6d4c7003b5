package rowtable_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asklund/fyne-rowtable/rowtable"
)

func TestNewValue(t *testing.T) {
	v := rowtable.NewValue(42, rowtable.TypeInt)
	assert.Equal(t, 42, v.Raw)
	assert.Equal(t, rowtable.TypeInt, v.Type)
	assert.False(t, v.IsNull)
	assert.Equal(t, "42", v.Formatted)

	null := rowtable.NewValue(nil, rowtable.TypeString)
	assert.True(t, null.IsNull)
	assert.Equal(t, "", null.Formatted)
}

func TestNewNullValue(t *testing.T) {
	v := rowtable.NewNullValue(rowtable.TypeFloat)
	assert.True(t, v.IsNull)
	assert.Equal(t, rowtable.TypeFloat, v.Type)
	assert.Equal(t, "", v.Formatted)
}

func TestInferType(t *testing.T) {
	cases := []struct {
		raw  interface{}
		want rowtable.DataType
	}{
		{"hello", rowtable.TypeString},
		{42, rowtable.TypeInt},
		{int64(7), rowtable.TypeInt},
		{uint8(1), rowtable.TypeInt},
		{3.14, rowtable.TypeFloat},
		{float32(1.5), rowtable.TypeFloat},
		{true, rowtable.TypeBool},
		{time.Now(), rowtable.TypeTimestamp},
		{[]byte("blob"), rowtable.TypeBinary},
		{[]string{"a"}, rowtable.TypeList},
		{map[string]int{"a": 1}, rowtable.TypeStruct},
		{struct{ X int }{1}, rowtable.TypeStruct},
		{nil, rowtable.TypeString},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, rowtable.InferType(c.raw), "value %v", c.raw)
	}
}

func TestValueOfFormatsTimestamps(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 2, 0, time.UTC)
	v := rowtable.ValueOf(ts)
	assert.Equal(t, rowtable.TypeTimestamp, v.Type)
	assert.Equal(t, "2026-03-14T15:09:02Z", v.Formatted)
}

func TestCompare(t *testing.T) {
	num := func(n interface{}) rowtable.Value { return rowtable.ValueOf(n) }

	assert.Negative(t, rowtable.Compare(num(1), num(2)))
	assert.Positive(t, rowtable.Compare(num(2.5), num(2)))
	assert.Zero(t, rowtable.Compare(num(3), num(3.0)))

	assert.Negative(t, rowtable.Compare(num("apple"), num("pear")))

	// Nulls order before any value.
	null := rowtable.NewNullValue(rowtable.TypeInt)
	assert.Negative(t, rowtable.Compare(null, num(0)))
	assert.Positive(t, rowtable.Compare(num(0), null))
	assert.Zero(t, rowtable.Compare(null, null))

	assert.Negative(t, rowtable.Compare(num(false), num(true)))

	early := rowtable.ValueOf(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := rowtable.ValueOf(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Negative(t, rowtable.Compare(early, late))
	assert.Positive(t, rowtable.Compare(late, early))
}

func TestDataTypeString(t *testing.T) {
	assert.Equal(t, "String", rowtable.TypeString.String())
	assert.Equal(t, "Timestamp", rowtable.TypeTimestamp.String())
	assert.Equal(t, "Unknown(99)", rowtable.DataType(99).String())
}

func TestSortState(t *testing.T) {
	assert.False(t, rowtable.SortState{Column: -1}.IsSorted())
	assert.False(t, rowtable.SortState{Column: 2, Direction: rowtable.SortNone}.IsSorted())
	assert.True(t, rowtable.SortState{Column: 0, Direction: rowtable.SortDescending}.IsSorted())
	assert.Equal(t, "Ascending", rowtable.SortAscending.String())
}
