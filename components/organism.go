// Package components defines ECS components for the simulation.
package components

// Body holds the physical traits fixed at birth.
type Body struct {
	Weight float32
	Speed  float32
}

// Energy tracks an organism's metabolic state.
// Value may go to zero or below; that marks death until the organism is culled.
type Energy struct {
	Value float32
}

// Set stores v, capped at MaxEnergy. There is no lower floor.
func (e *Energy) Set(v float32) {
	if v > MaxEnergy {
		v = MaxEnergy
	}
	e.Value = v
}

// Add increases energy by amount, capped at MaxEnergy.
func (e *Energy) Add(amount float32) {
	e.Set(e.Value + amount)
}

// Dead reports whether the organism has run out of energy.
func (e *Energy) Dead() bool {
	return e.Value <= 0
}

// Organism bundles identity and feeding behavior.
type Organism struct {
	ID      uint32 // 1-based, input order
	Kind    Kind
	Species string // Cannibalism is judged on this tag
	Sound   string // Display only
}

// Traits are the validated parameters an organism is created from.
type Traits struct {
	Species string
	Kind    Kind
	Sound   string
	Weight  float32
	Speed   float32
	Energy  float32
}
