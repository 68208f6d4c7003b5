package rowtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asklund/fyne-rowtable/rowtable"
)

func TestMapRow(t *testing.T) {
	row := rowtable.NewMapRow(map[string]interface{}{
		"name": "Ana",
		"age":  36,
	})

	v, ok := row.Attribute("name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", v)

	_, ok = row.Attribute("height")
	assert.False(t, ok)

	row.Set("height", 172)
	v, ok = row.Attribute("height")
	assert.True(t, ok)
	assert.Equal(t, 172, v)

	row.Delete("age")
	_, ok = row.Attribute("age")
	assert.False(t, ok)
}

func TestMapRowIdentity(t *testing.T) {
	a := rowtable.NewMapRow(nil)
	b := rowtable.NewMapRow(nil)

	assert.NotEmpty(t, a.RowID())
	assert.Equal(t, a.RowID(), a.RowID())
	assert.NotEqual(t, a.RowID(), b.RowID())
}

type person struct {
	Name     string
	Age      int `row:"years"`
	nickname string
}

func TestStructRow(t *testing.T) {
	row := rowtable.NewStructRow(person{Name: "Bo", Age: 44, nickname: "b"})

	v, ok := row.Attribute("Name")
	assert.True(t, ok)
	assert.Equal(t, "Bo", v)

	// Case-insensitive fallback for accessor-style names.
	v, ok = row.Attribute("name")
	assert.True(t, ok)
	assert.Equal(t, "Bo", v)

	// Tagged fields answer only to their tag.
	v, ok = row.Attribute("years")
	assert.True(t, ok)
	assert.Equal(t, 44, v)
	_, ok = row.Attribute("Age")
	assert.False(t, ok)

	// Unexported fields are not attributes.
	_, ok = row.Attribute("nickname")
	assert.False(t, ok)
}

func TestStructRowPointer(t *testing.T) {
	row := rowtable.NewStructRow(&person{Name: "Cy"})
	v, ok := row.Attribute("name")
	assert.True(t, ok)
	assert.Equal(t, "Cy", v)
	assert.NotEmpty(t, row.RowID())
}

func TestStructRowNonStruct(t *testing.T) {
	row := rowtable.NewStructRow(42)
	_, ok := row.Attribute("anything")
	assert.False(t, ok)
}
