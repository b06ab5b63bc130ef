package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a level range is empty or inverted
	ErrInvalidRange = errors.New("invalid level range")
	// ErrMissingReferenceData is returned when a building or troop has no loadable table
	ErrMissingReferenceData = errors.New("missing reference data")
	// ErrMalformedNumericInput marks free-text input that is not a number
	ErrMalformedNumericInput = errors.New("malformed numeric input")
	// ErrUnknownBuilding is returned for names absent from the catalog
	ErrUnknownBuilding = errors.New("unknown building")
	// ErrUnknownTroop is returned for troop types absent from the catalog
	ErrUnknownTroop = errors.New("unknown troop type")
)

// InvalidRangeError wraps ErrInvalidRange with the offending bounds
func InvalidRangeError(r LevelRange) error {
	return fmt.Errorf("%w: start level %d must be at least 1 and below target level %d (at most %d)",
		ErrInvalidRange, r.Start, r.End, MaxLevel)
}
