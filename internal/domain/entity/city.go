package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCity is returned by Cities.Add when a city with the same identity is already tracked.
var ErrDuplicateCity = errors.New("city already tracked")

// City is a tracked location. Identity is the lower-cased, trimmed (name, stateCode) pair.
type City struct {
	Name      string   `json:"name" validate:"required"`
	StateCode string   `json:"stateCode" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// NewCity builds a city with optional coordinates
func NewCity(name, stateCode string, latitude, longitude *float64) City {
	return City{
		Name:      strings.TrimSpace(name),
		StateCode: strings.TrimSpace(stateCode),
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Identity returns the normalized identity used for equality
func (c City) Identity() string {
	return strings.ToLower(strings.TrimSpace(c.Name)) + "|" + strings.ToLower(strings.TrimSpace(c.StateCode))
}

// SameAs reports whether both cities share the same identity
func (c City) SameAs(other City) bool {
	return c.Identity() == other.Identity()
}

// Label renders the display label "<city>, <state>"
func (c City) Label() string {
	return fmt.Sprintf("%s, %s", strings.TrimSpace(c.Name), strings.TrimSpace(c.StateCode))
}

// HasCoordinates reports whether both latitude and longitude are known
func (c City) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Cities is an ordered list of tracked cities without duplicate identities.
type Cities []City

// Add returns a new list with city appended, or ErrDuplicateCity.
func (cs Cities) Add(city City) (Cities, error) {
	if cs.Contains(city) {
		return cs, fmt.Errorf("%w: %s", ErrDuplicateCity, city.Label())
	}

	next := make(Cities, len(cs), len(cs)+1)
	copy(next, cs)
	return append(next, city), nil
}

// Remove returns a new list without the city matching the given identity.
func (cs Cities) Remove(city City) Cities {
	next := make(Cities, 0, len(cs))
	for _, c := range cs {
		if !c.SameAs(city) {
			next = append(next, c)
		}
	}
	return next
}

// Contains reports whether a city with the same identity is tracked
func (cs Cities) Contains(city City) bool {
	for _, c := range cs {
		if c.SameAs(city) {
			return true
		}
	}
	return false
}

// Distinct keeps the first occurrence of each identity, preserving order
func (cs Cities) Distinct() Cities {
	var out Cities
	for _, c := range cs {
		if next, err := out.Add(c); err == nil {
			out = next
		}
	}
	return out
}
