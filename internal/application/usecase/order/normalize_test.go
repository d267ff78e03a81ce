package order

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, body string) map[string]any {
	t.Helper()
	var raw map[string]any
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&raw))
	return raw
}

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(map[string]any{})

	assert.Empty(t, p.Colours)
	assert.Empty(t, p.Sizes)
	assert.NotNil(t, p.SizeQuantities)
	assert.Empty(t, p.SizeQuantities)
	assert.False(t, p.IsSet)
	assert.Equal(t, 1, p.SetMultiplier)
	assert.Equal(t, 0, p.Quantity)
	assert.False(t, p.Has(FieldCustomerName))
}

func TestNormalizeStringLists(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "comma separated", value: "Red, Blue ,,Green", want: []string{"Red", "Blue", "Green"}},
		{name: "json encoded", value: `["S", " M ", ""]`, want: []string{"S", "M"}},
		{name: "list drops blanks", value: []any{"S", "  ", "L"}, want: []string{"S", "L"}},
		{name: "lone list entry is split", value: []any{"S,M"}, want: []string{"S", "M"}},
		{name: "numbers become strings", value: []any{json.Number("42")}, want: []string{"42"}},
		{name: "malformed json falls back to split", value: `[S, M`, want: []string{"[S", "M"}},
		{name: "blank string", value: "   ", want: []string{}},
		{name: "unsupported type", value: json.Number("3"), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(map[string]any{FieldColours: tt.value, FieldSize: tt.value})
			assert.Equal(t, tt.want, p.Colours)
			assert.Equal(t, tt.want, p.Sizes)
		})
	}
}

func TestNormalizeSizeQuantities(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  map[string]*int
	}{
		{name: "json string", value: `{"S": 2, "M": "3"}`, want: map[string]*int{"S": intPtr(2), "M": intPtr(3)}},
		{name: "malformed json", value: `{"S": 2`, want: map[string]*int{}},
		{name: "json array", value: `[1, 2]`, want: map[string]*int{}},
		{name: "empty string", value: "", want: map[string]*int{}},
		{
			name:  "null markers become absent",
			value: map[string]any{"S": nil, "M": "", "L": "null", "XL": "undefined", "2XL": "abc"},
			want:  map[string]*int{"S": nil, "M": nil, "L": nil, "XL": nil, "2XL": nil},
		},
		{name: "floats truncate", value: map[string]any{"S": json.Number("2.9")}, want: map[string]*int{"S": intPtr(2)}},
		{name: "unsupported type", value: []any{1}, want: map[string]*int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(map[string]any{FieldSizeQuantities: tt.value})
			assert.Equal(t, tt.want, p.SizeQuantities)
			assert.True(t, p.Has(FieldSizeQuantities))
		})
	}
}

func TestNormalizeIsSet(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{"true", true}, {"TRUE", true}, {"1", true}, {"yes", true}, {"On", true},
		{"false", false}, {"0", false}, {"nope", false}, {"", false},
		{true, true}, {false, false}, {nil, false},
		{json.Number("1"), true}, {json.Number("0"), false},
		{[]any{}, false}, {[]any{"x"}, true},
	}

	for _, tt := range tests {
		p := Normalize(map[string]any{FieldIsSet: tt.value})
		assert.Equal(t, tt.want, p.IsSet, "value %#v", tt.value)
	}
}

func TestNormalizeIntegers(t *testing.T) {
	tests := []struct {
		value          any
		wantMultiplier int
		wantQuantity   int
	}{
		{"3", 3, 3},
		{" 4 ", 4, 4},
		{json.Number("5"), 5, 5},
		{json.Number("2.5"), 2, 2},
		{"2.5", 1, 0},
		{"abc", 1, 0},
		{nil, 1, 0},
		{true, 1, 1},
	}

	for _, tt := range tests {
		p := Normalize(map[string]any{FieldSetMultiplier: tt.value, FieldQuantity: tt.value})
		assert.Equal(t, tt.wantMultiplier, p.SetMultiplier, "value %#v", tt.value)
		assert.Equal(t, tt.wantQuantity, p.Quantity, "value %#v", tt.value)
	}
}

func TestNormalizeScalars(t *testing.T) {
	p := Normalize(decodeJSON(t, `{
		"customer_name": "  Acme  ",
		"product_name": "Hoodie",
		"fabric_weight": 320,
		"description": null,
		"fabric_type": ["cotton"],
		"product_image": null,
		"unknown": "ignored"
	}`))

	require.NotNil(t, p.CustomerName)
	assert.Equal(t, "Acme", *p.CustomerName)
	require.NotNil(t, p.FabricWeight)
	assert.Equal(t, "320", *p.FabricWeight)
	assert.True(t, p.Has(FieldDescription))
	assert.Nil(t, p.Description)
	assert.Nil(t, p.FabricType)
	assert.Equal(t, msgNotAString, p.typeErrors[FieldFabricType])
	assert.True(t, p.ClearImage)
	assert.False(t, p.Has("unknown"))
}

func TestNormalizeForm(t *testing.T) {
	p := NormalizeForm(map[string][]string{
		"customer_name":   {"Acme"},
		"product_name":    {"first", "last"},
		"fabric_type":     {"undefined"},
		"description":     {"null"},
		"status":          {""},
		"size":            {"S", " ", "XL"},
		"colours":         {"Red,Blue"},
		"size_quantities": {`{"S": "2", "XL": 3}`},
		"is_set":          {"on"},
		"set_multiplier":  {"2"},
		"quantity":        {"999"},
	})

	assert.Equal(t, "last", *p.ProductName)
	assert.False(t, p.Has(FieldFabricType))
	assert.False(t, p.Has(FieldDescription))
	assert.False(t, p.Has(FieldStatus))
	assert.Equal(t, []string{"S", "XL"}, p.Sizes)
	assert.Equal(t, []string{"Red", "Blue"}, p.Colours)
	assert.Equal(t, map[string]*int{"S": intPtr(2), "XL": intPtr(3)}, p.SizeQuantities)
	assert.True(t, p.IsSet)
	assert.Equal(t, 2, p.SetMultiplier)
	assert.Equal(t, 999, p.Quantity)
}

func TestNormalizeFormEmptyListFields(t *testing.T) {
	p := NormalizeForm(map[string][]string{"size": {}, "colours": {""}})

	assert.True(t, p.Has(FieldSize))
	assert.Empty(t, p.Sizes)
	assert.Empty(t, p.Colours)
}
