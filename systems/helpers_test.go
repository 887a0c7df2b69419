package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/savanna/components"
)

func zebra(weight, speed, energy float32) components.Traits {
	return components.Traits{Species: "Zebra", Kind: components.KindGrazer, Sound: "Ihoho", Weight: weight, Speed: speed, Energy: energy}
}

func lion(weight, speed, energy float32) components.Traits {
	return components.Traits{Species: "Lion", Kind: components.KindHunter, Sound: "Roar", Weight: weight, Speed: speed, Energy: energy}
}

func boar(weight, speed, energy float32) components.Traits {
	return components.Traits{Species: "Boar", Kind: components.KindBoth, Sound: "Oink", Weight: weight, Speed: speed, Energy: energy}
}

// newTestRegistry builds a registry from traits, failing the test on invalid input.
func newTestRegistry(t *testing.T, traits ...components.Traits) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, tr := range traits {
		if _, err := reg.Add(tr); err != nil {
			t.Fatalf("Add(%+v): %v", tr, err)
		}
	}
	return reg
}

func newTestPool(t *testing.T, q float32) *ResourcePool {
	t.Helper()
	pool, err := NewResourcePool(q)
	if err != nil {
		t.Fatalf("NewResourcePool(%v): %v", q, err)
	}
	return pool
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}
