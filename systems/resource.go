package systems

import "github.com/pthm-cable/savanna/components"

// regrowFactor is the multiplier applied to the pool once per day.
const regrowFactor = float32(2.0)

// ResourcePool is the shared grass supply every grazer draws from.
// Quantity always stays within [MinGrass, MaxGrass].
type ResourcePool struct {
	quantity float32
}

// NewResourcePool creates a pool holding q units. q outside the grass bounds is rejected.
func NewResourcePool(q float32) (*ResourcePool, error) {
	if err := components.CheckGrass(q); err != nil {
		return nil, err
	}
	return &ResourcePool{quantity: q}, nil
}

// Quantity returns the current amount of grass.
func (p *ResourcePool) Quantity() float32 {
	return p.quantity
}

// Deduct removes amount from the pool, never going below zero.
// Callers check Quantity first; there is no error for an over-draw.
func (p *ResourcePool) Deduct(amount float32) {
	if amount < 0 {
		return
	}
	p.set(p.quantity - amount)
}

// Regenerate doubles the pool, capped at MaxGrass.
func (p *ResourcePool) Regenerate() {
	if regrowFactor*p.quantity > components.MaxGrass {
		p.quantity = components.MaxGrass
		return
	}
	p.quantity *= regrowFactor
}

func (p *ResourcePool) set(v float32) {
	switch {
	case v > components.MaxGrass:
		v = components.MaxGrass
	case v < components.MinGrass:
		v = components.MinGrass
	}
	p.quantity = v
}
