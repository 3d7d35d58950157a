package numberutils

import (
	"math"
	"strconv"
	"strings"
)

// RoundTo rounds value half away from zero to the given number of decimal places.
func RoundTo(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}

// RoundToInt rounds value half away from zero to the nearest integer.
func RoundToInt(value float64) int {
	return int(math.Round(value))
}

// ToOptionalFloat parses s as a float64. An empty string yields nil.
func ToOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, strconv.ErrRange
	}
	return &f, nil
}
