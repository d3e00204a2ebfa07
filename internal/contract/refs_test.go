package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseRefID tests the reference shapes Grist exports produce.
func TestParseRefID(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "int", input: 7, want: "7"},
		{name: "int64", input: int64(7), want: "7"},
		{name: "float", input: float64(7), want: "7"},
		{name: "json number", input: json.Number("7"), want: "7"},
		{name: "numeric string", input: "7", want: "7"},
		{name: "ref list array", input: []any{"L", float64(7), float64(9)}, want: "7"},
		{name: "record map", input: map[string]any{"id": float64(7)}, want: "7"},
		{name: "rowId map", input: map[string]any{"rowId": 7}, want: "7"},
		{name: "json encoded string", input: `["L", 7]`, want: "7"},
		{name: "free text with id", input: "row 7 please", want: "7"},
		{name: "zero is no reference", input: 0, want: ""},
		{name: "negative is no reference", input: -3, want: ""},
		{name: "nil", input: nil, want: ""},
		{name: "bool", input: true, want: ""},
		{name: "empty string", input: "", want: ""},
		{name: "no digits", input: "nope", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRefID(tc.input))
		})
	}
}

func TestParseRefList(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "marker array", input: []any{"L", float64(3), float64(5)}, want: []string{"3", "5"}},
		{name: "plain array", input: []any{1, 2}, want: []string{"1", "2"}},
		{name: "json string", input: "[3, 5]", want: []string{"3", "5"}},
		{name: "digit soup", input: "3, 5 and 9", want: []string{"3", "5", "9"}},
		{name: "single scalar", input: 4, want: []string{"4"}},
		{name: "nil", input: nil, want: nil},
		{name: "empty string", input: "   ", want: nil},
		{name: "skips zero ids", input: []any{0, 2}, want: []string{"2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseRefList(tc.input))
		})
	}
}
