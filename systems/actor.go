package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// Actor is a view of one organism stored in a Registry.
// It holds no state of its own; every accessor reads the ECS components.
type Actor struct {
	entity ecs.Entity
	reg    *Registry
}

// ID returns the organism's run-unique identifier.
func (a Actor) ID() uint32 { return a.reg.orgMap.Get(a.entity).ID }

// Kind returns the organism's feeding kind.
func (a Actor) Kind() components.Kind { return a.reg.orgMap.Get(a.entity).Kind }

// Species returns the species tag.
func (a Actor) Species() string { return a.reg.orgMap.Get(a.entity).Species }

// Sound returns the signature sound.
func (a Actor) Sound() string { return a.reg.orgMap.Get(a.entity).Sound }

// Weight returns the organism's weight.
func (a Actor) Weight() float32 { return a.reg.bodyMap.Get(a.entity).Weight }

// Speed returns the organism's speed.
func (a Actor) Speed() float32 { return a.reg.bodyMap.Get(a.entity).Speed }

// Energy returns the current energy, which may be non-positive for a dead organism.
func (a Actor) Energy() float32 { return a.reg.energyMap.Get(a.entity).Value }

// SetEnergy stores v capped at MaxEnergy.
func (a Actor) SetEnergy(v float32) { a.reg.energyMap.Get(a.entity).Set(v) }

// IsDead reports whether energy is at or below zero.
func (a Actor) IsDead() bool { return a.reg.energyMap.Get(a.entity).Dead() }

// DecrementEnergy applies the daily one-unit cost.
func (a Actor) DecrementEnergy() { a.SetEnergy(a.Energy() - 1) }

// Record copies the organism's current state out of the world.
func (a Actor) Record() ActorRecord {
	body, energy, org := a.reg.mapper.Get(a.entity)
	return ActorRecord{
		ID:      org.ID,
		Species: org.Species,
		Kind:    org.Kind,
		Sound:   org.Sound,
		Weight:  body.Weight,
		Speed:   body.Speed,
		Energy:  energy.Value,
	}
}

// ActorRecord is a detached copy of an organism's state.
type ActorRecord struct {
	ID      uint32          `csv:"id" json:"id"`
	Species string          `csv:"species" json:"species"`
	Kind    components.Kind `csv:"kind" json:"kind"`
	Sound   string          `csv:"sound" json:"sound"`
	Weight  float32         `csv:"weight" json:"weight"`
	Speed   float32         `csv:"speed" json:"speed"`
	Energy  float32         `csv:"energy" json:"energy"`
}
