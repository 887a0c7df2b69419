package components

import (
	"errors"
	"fmt"
)

// Attribute bounds. Values at the limits are valid.
const (
	MinWeight = float32(5.0)
	MaxWeight = float32(200.0)
	MinSpeed  = float32(5.0)
	MaxSpeed  = float32(60.0)
	MinEnergy = float32(0.0)
	MaxEnergy = float32(100.0)
	MinGrass  = float32(0.0)
	MaxGrass  = float32(100.0)
)

// Bound violations. Messages are what the CLI prints on a fatal error.
var (
	ErrWeightOutOfBounds = errors.New("The weight is out of bounds")
	ErrEnergyOutOfBounds = errors.New("The energy is out of bounds")
	ErrSpeedOutOfBounds  = errors.New("The speed is out of bounds")
	ErrGrassOutOfBounds  = errors.New("The grass is out of bounds")
)

// BoundError reports an attribute outside its declared range.
type BoundError struct {
	Field string
	Value float32
	Err   error
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Field, e.Value, e.Err)
}

func (e *BoundError) Unwrap() error {
	return e.Err
}

func outside(v, lo, hi float32) bool {
	// NaN compares false against both limits, so reject it explicitly.
	return v != v || v < lo || v > hi
}

// CheckTraits validates weight, energy and speed, in that order.
func CheckTraits(t Traits) error {
	if outside(t.Weight, MinWeight, MaxWeight) {
		return &BoundError{Field: "weight", Value: t.Weight, Err: ErrWeightOutOfBounds}
	}
	if outside(t.Energy, MinEnergy, MaxEnergy) {
		return &BoundError{Field: "energy", Value: t.Energy, Err: ErrEnergyOutOfBounds}
	}
	if outside(t.Speed, MinSpeed, MaxSpeed) {
		return &BoundError{Field: "speed", Value: t.Speed, Err: ErrSpeedOutOfBounds}
	}
	return nil
}

// CheckGrass validates an initial resource quantity.
func CheckGrass(q float32) error {
	if outside(q, MinGrass, MaxGrass) {
		return &BoundError{Field: "grass", Value: q, Err: ErrGrassOutOfBounds}
	}
	return nil
}
