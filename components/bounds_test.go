package components

import (
	"errors"
	"math"
	"testing"
)

func TestCheckTraits(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name                  string
		weight, speed, energy float32
		want                  error
	}{
		{"all at lower limits", 5, 5, 0, nil},
		{"all at upper limits", 200, 60, 100, nil},
		{"weight low", 4.99, 10, 10, ErrWeightOutOfBounds},
		{"weight high", 200.01, 10, 10, ErrWeightOutOfBounds},
		{"energy negative", 10, 10, -0.1, ErrEnergyOutOfBounds},
		{"energy high", 10, 10, 100.5, ErrEnergyOutOfBounds},
		{"speed low", 10, 4, 10, ErrSpeedOutOfBounds},
		{"speed high", 10, 61, 10, ErrSpeedOutOfBounds},
		{"weight checked first", 1, 100, 200, ErrWeightOutOfBounds},
		{"energy checked before speed", 10, 100, 200, ErrEnergyOutOfBounds},
		{"nan weight", nan, 10, 10, ErrWeightOutOfBounds},
		{"nan speed", 10, nan, 10, ErrSpeedOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTraits(Traits{Weight: tt.weight, Speed: tt.speed, Energy: tt.energy})
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckTraits() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCheckGrass(t *testing.T) {
	for _, q := range []float32{0, 0.5, 100} {
		if err := CheckGrass(q); err != nil {
			t.Errorf("CheckGrass(%v) = %v, want nil", q, err)
		}
	}
	for _, q := range []float32{-0.01, 100.01, float32(math.Inf(1))} {
		if err := CheckGrass(q); !errors.Is(err, ErrGrassOutOfBounds) {
			t.Errorf("CheckGrass(%v) = %v, want %v", q, err, ErrGrassOutOfBounds)
		}
	}
}

func TestBoundErrorDetails(t *testing.T) {
	err := CheckTraits(Traits{Weight: 10, Speed: 70, Energy: 10})

	var be *BoundError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BoundError, got %T", err)
	}
	if be.Field != "speed" || be.Value != 70 {
		t.Errorf("BoundError = {%s %v}, want {speed 70}", be.Field, be.Value)
	}
	if be.Err.Error() != "The speed is out of bounds" {
		t.Errorf("message = %q", be.Err.Error())
	}
}

func TestEnergy(t *testing.T) {
	e := Energy{Value: 50}

	e.Set(150)
	if e.Value != MaxEnergy {
		t.Errorf("Set(150) stored %v, want %v", e.Value, MaxEnergy)
	}

	e.Set(-3)
	if e.Value != -3 {
		t.Errorf("Set(-3) stored %v, want -3 (no floor)", e.Value)
	}
	if !e.Dead() {
		t.Error("negative energy should be dead")
	}

	e.Set(0)
	if !e.Dead() {
		t.Error("zero energy should be dead")
	}

	e.Add(0.5)
	if e.Dead() {
		t.Error("positive energy should be alive")
	}
}
