package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/savanna/components"
)

// Registry is the ordered population of live organisms.
// Components live in an ECS world; order lives in a separate entity list
// because the world does not preserve insertion order across removals.
type Registry struct {
	world *ecs.World

	mapper *ecs.Map3[components.Body, components.Energy, components.Organism]
	filter *ecs.Filter3[components.Body, components.Energy, components.Organism]

	bodyMap   *ecs.Map[components.Body]
	energyMap *ecs.Map[components.Energy]
	orgMap    *ecs.Map[components.Organism]

	order  []ecs.Entity
	nextID uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	world := ecs.NewWorld()
	return &Registry{
		world:     world,
		mapper:    ecs.NewMap3[components.Body, components.Energy, components.Organism](world),
		filter:    ecs.NewFilter3[components.Body, components.Energy, components.Organism](world),
		bodyMap:   ecs.NewMap[components.Body](world),
		energyMap: ecs.NewMap[components.Energy](world),
		orgMap:    ecs.NewMap[components.Organism](world),
		nextID:    1,
	}
}

// Add validates t and appends a new organism at the end of the order.
func (r *Registry) Add(t components.Traits) (Actor, error) {
	if err := components.CheckTraits(t); err != nil {
		return Actor{}, err
	}

	body := components.Body{Weight: t.Weight, Speed: t.Speed}
	energy := components.Energy{Value: t.Energy}
	org := components.Organism{
		ID:      r.nextID,
		Kind:    t.Kind,
		Species: t.Species,
		Sound:   t.Sound,
	}
	r.nextID++

	entity := r.mapper.NewEntity(&body, &energy, &org)
	r.order = append(r.order, entity)
	return Actor{entity: entity, reg: r}, nil
}

// Len returns the number of organisms currently registered.
func (r *Registry) Len() int {
	return len(r.order)
}

// Snapshot returns the current order as a new slice.
// Later culls do not affect a snapshot already taken.
func (r *Registry) Snapshot() []Actor {
	actors := make([]Actor, len(r.order))
	for i, e := range r.order {
		actors[i] = Actor{entity: e, reg: r}
	}
	return actors
}

// Survivors returns the live organisms in their current order.
func (r *Registry) Survivors() []Actor {
	return r.Snapshot()
}

// Get returns the organism with the given ID.
func (r *Registry) Get(id uint32) (Actor, bool) {
	for _, e := range r.order {
		if r.orgMap.Get(e).ID == id {
			return Actor{entity: e, reg: r}, true
		}
	}
	return Actor{}, false
}

// Cull removes every dead organism in one pass, keeping survivors in relative order.
// Returns records of the removed organisms in their former order.
func (r *Registry) Cull() []ActorRecord {
	var removed []ActorRecord

	// First pass: compact the order (must complete before touching the world)
	kept := r.order[:0]
	var dead []ecs.Entity
	for _, e := range r.order {
		if r.energyMap.Get(e).Dead() {
			removed = append(removed, Actor{entity: e, reg: r}.Record())
			dead = append(dead, e)
			continue
		}
		kept = append(kept, e)
	}
	// Clear the tail so removed entities are not retained by the backing array
	for i := len(kept); i < len(r.order); i++ {
		r.order[i] = ecs.Entity{}
	}
	r.order = kept

	// Second pass: remove entities from the world
	for _, e := range dead {
		r.world.RemoveEntity(e)
	}

	return removed
}

// KindTally holds per-kind aggregates over the live population.
type KindTally struct {
	Count    [3]int
	Energies [3][]float64
}

// Tally aggregates live organisms by kind using an ECS query.
func (r *Registry) Tally() KindTally {
	var t KindTally
	query := r.filter.Query()
	for query.Next() {
		_, energy, org := query.Get()
		k := org.Kind
		if int(k) >= len(t.Count) {
			continue
		}
		t.Count[k]++
		t.Energies[k] = append(t.Energies[k], float64(energy.Value))
	}
	return t
}
