package scenario

import (
	"fmt"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/systems"
)

// Scenario is a validated simulation input.
type Scenario struct {
	Days    int
	Grass   float32
	Animals []components.Traits // input order
}

// Build creates the resource pool and the population for sc.
func Build(sc *Scenario) (*systems.Registry, *systems.ResourcePool, error) {
	pool, err := systems.NewResourcePool(sc.Grass)
	if err != nil {
		return nil, nil, err
	}
	reg := systems.NewRegistry()
	for i, t := range sc.Animals {
		if _, err := reg.Add(t); err != nil {
			return nil, nil, fmt.Errorf("animal %d: %w", i+1, err)
		}
	}
	return reg, pool, nil
}

func checkDays(days int) error {
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("days %d outside [%d, %d]: %w", days, MinDays, MaxDays, ErrInvalidInputs)
	}
	return nil
}

func checkAnimalCount(n int) error {
	if n < MinAnimals || n > MaxAnimals {
		return fmt.Errorf("%d animals outside [%d, %d]: %w", n, MinAnimals, MaxAnimals, ErrInvalidInputs)
	}
	return nil
}
