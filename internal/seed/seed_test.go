package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 1, ds.Version)
	require.Len(t, ds.Locations, 100)

	first := ds.Locations[0]
	assert.Equal(t, "oshawa", first.Name)
	assert.InDelta(t, 43.8971, first.Latitude, 1e-9)
	assert.InDelta(t, -78.8658, first.Longitude, 1e-9)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		expectError bool
		expectedLen int
	}{
		{
			name: "valid dataset",
			data: `
version: 3
locations:
  - { name: "ajax", lat: 43.8509, lng: -79.0204 }
  - { name: "whitby", lat: 43.8964, lng: -78.9429 }
`,
			expectedLen: 2,
		},
		{
			name:        "no locations",
			data:        "version: 1\nlocations: []\n",
			expectError: true,
		},
		{
			name: "blank name",
			data: `
version: 1
locations:
  - { name: "  ", lat: 1, lng: 2 }
`,
			expectError: true,
		},
		{
			name: "duplicate after normalization",
			data: `
version: 1
locations:
  - { name: "Ajax", lat: 1, lng: 2 }
  - { name: " ajax ", lat: 3, lng: 4 }
`,
			expectError: true,
		},
		{
			name:        "malformed yaml",
			data:        "version: [",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse([]byte(tt.data))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, ds.Locations, tt.expectedLen)
		})
	}
}
