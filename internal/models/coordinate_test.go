package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    float64
		expectError bool
	}{
		{name: "decimal", input: "43.64", expected: 43.64},
		{name: "negative", input: "-79.42", expected: -79.42},
		{name: "surrounding whitespace", input: " 43.64 ", expected: 43.64},
		{name: "out of range kept", input: "200", expected: 200},
		{name: "empty", input: "", expectError: true},
		{name: "word", input: "north", expectError: true},
		{name: "comma decimal", input: "-79,42", expectError: true},
		{name: "NaN", input: "NaN", expectError: true},
		{name: "lowercase nan", input: "nan", expectError: true},
		{name: "Inf", input: "Inf", expectError: true},
		{name: "negative infinity", input: "-Infinity", expectError: true},
		{name: "overflow", input: "1e400", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseCoordinate(tt.input)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}
