package models

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned by ParseCoordinate for text that is not a
// finite decimal number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ParseCoordinate parses a latitude or longitude typed as text. Surrounding
// whitespace is ignored. NaN and infinities are rejected since they can be
// neither stored nor rendered as JSON.
func ParseCoordinate(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, ErrInvalidCoordinate
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinate
	}
	return v, nil
}
