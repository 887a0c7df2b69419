package scenario

import (
	"fmt"
	"strconv"

	"github.com/pthm-cable/savanna/components"
	"github.com/pthm-cable/savanna/config"
)

// Species describes what an input name resolves to.
type Species struct {
	Name  string
	Kind  components.Kind
	Sound string
}

// Catalog maps species names, case-sensitively, to their kind and sound.
type Catalog map[string]Species

// NewCatalog builds a catalog from the configured species table.
func NewCatalog(species []config.SpeciesConfig) (Catalog, error) {
	cat := make(Catalog, len(species))
	for _, sp := range species {
		kind, err := components.ParseKind(sp.Kind)
		if err != nil {
			return nil, fmt.Errorf("species %s: %w", sp.Name, err)
		}
		cat[sp.Name] = Species{Name: sp.Name, Kind: kind, Sound: sp.Sound}
	}
	return cat, nil
}

// Traits resolves name and checks the attributes.
// Unknown names are reported before any bound violation.
func (c Catalog) Traits(name string, weight, speed, energy float32) (components.Traits, error) {
	sp, ok := c[name]
	if !ok {
		return components.Traits{}, fmt.Errorf("unknown species %s: %w", strconv.Quote(name), ErrInvalidInputs)
	}
	t := components.Traits{
		Species: sp.Name,
		Kind:    sp.Kind,
		Sound:   sp.Sound,
		Weight:  weight,
		Speed:   speed,
		Energy:  energy,
	}
	if err := components.CheckTraits(t); err != nil {
		return components.Traits{}, err
	}
	return t, nil
}
