package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	Code string
	Name string
}

func TestFirst_ReturnsFirstMatch(t *testing.T) {
	records := []record{
		{Code: "AA", Name: "first"},
		{Code: "BA", Name: "second"},
		{Code: "AA", Name: "third"},
	}

	found, ok := First(records, func(r record) bool { return r.Code == "AA" })
	assert.True(t, ok)
	assert.Equal(t, "first", found.Name)
}

func TestFirst_NotFound(t *testing.T) {
	records := []record{{Code: "AA"}}

	_, ok := First(records, func(r record) bool { return r.Code == "ZZ" })
	assert.False(t, ok)

	_, ok = First(nil, func(r record) bool { return true })
	assert.False(t, ok)
}

func TestFirstByKey(t *testing.T) {
	records := []record{
		{Code: "AA", Name: "American Airlines"},
		{Code: "BA", Name: "British Airways"},
	}

	found, ok := FirstByKey(records, func(r record) string { return r.Code }, "BA")
	assert.True(t, ok)
	assert.Equal(t, "British Airways", found.Name)

	_, ok = FirstByKey(records, func(r record) string { return r.Code }, "LH")
	assert.False(t, ok)
}
