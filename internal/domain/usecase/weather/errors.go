package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuery is the parent of every query validation error
	ErrInvalidQuery = errors.New("invalid weather query")
	// ErrMissingLocation means city or state is blank
	ErrMissingLocation = fmt.Errorf("%w: city and state are required", ErrInvalidQuery)
	// ErrNoCities means a batch lookup was called with an empty list
	ErrNoCities = fmt.Errorf("%w: at least one city is required", ErrInvalidQuery)
	// ErrDayOffsetRange means the requested day offset is outside the forecast window
	ErrDayOffsetRange = fmt.Errorf("%w: day offset out of bounds", ErrInvalidQuery)
	// ErrNoData means the provider gave no usable forecast
	ErrNoData = errors.New("no forecast data available")
	// ErrDayOutOfRange means the provider returned fewer daily rows than the requested offset
	ErrDayOutOfRange = fmt.Errorf("%w: day offset out of range", ErrNoData)
	// ErrDataUnavailable means neither the cache nor the provider could answer
	ErrDataUnavailable = errors.New("weather data unavailable")
	// ErrTickerUnavailable means no seed city could be fetched for the ticker
	ErrTickerUnavailable = errors.New("ticker data unavailable")
)

// DataUnavailableError carries the city that could not be served. It matches ErrDataUnavailable.
type DataUnavailableError struct {
	City  string
	State string
	Err   error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("weather data unavailable for %s, %s: %v", e.City, e.State, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
