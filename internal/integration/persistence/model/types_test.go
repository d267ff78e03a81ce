package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListRoundTrip(t *testing.T) {
	value, err := StringList{"Navy Blue", `quote"d`, "a,b"}.Value()
	require.NoError(t, err)

	var got StringList
	require.NoError(t, got.Scan(value))
	assert.Equal(t, StringList{"Navy Blue", `quote"d`, "a,b"}, got)
}

func TestStringListNilIsEmpty(t *testing.T) {
	value, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)

	var got StringList
	require.NoError(t, got.Scan(nil))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSizeQuantitiesScan(t *testing.T) {
	var got SizeQuantities
	require.NoError(t, got.Scan([]byte(`{"S": 2, "M": null}`)))

	require.NotNil(t, got["S"])
	assert.Equal(t, 2, *got["S"])
	assert.Contains(t, got, "M")
	assert.Nil(t, got["M"])

	require.NoError(t, got.Scan(nil))
	assert.Empty(t, got)

	assert.Error(t, got.Scan(42))
	assert.Error(t, got.Scan("not json"))
}

func TestSizeQuantitiesValueKeepsNulls(t *testing.T) {
	two := 2
	value, err := SizeQuantities{"S": &two, "L": nil}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"S": 2, "L": null}`, value.(string))

	empty, err := SizeQuantities(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", empty)
}
