package numberutils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToIntWithDefault converts the given string to an integer.
// If the string cannot be converted, it returns the provided default value.
func ToIntWithDefault(s string, defaultVal int) int {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return i
	}
	return defaultVal
}

// ToIntInRange converts s to an integer and checks it lies within [min, max].
// An empty string yields defaultVal.
func ToIntInRange(s string, defaultVal, min, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}

	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer: %w", s, err)
	}
	if !IsIntInRange(i, min, max) {
		return 0, fmt.Errorf("%d is outside [%d, %d]", i, min, max)
	}
	return i, nil
}

// IsIntInRange checks if the given number is within the specified range (inclusive).
func IsIntInRange(num, min, max int) bool {
	return num >= min && num <= max
}

// MaxInt returns the maximum value from a list of integers.
func MaxInt(first int, nums ...int) int {
	maxVal := first
	for _, num := range nums {
		if num > maxVal {
			maxVal = num
		}
	}
	return maxVal
}
