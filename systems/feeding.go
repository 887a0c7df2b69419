package systems

import "github.com/pthm-cable/savanna/components"

// grazeFraction is the share of body weight a grazer eats per day.
const grazeFraction = float32(0.1)

// Failure identifies why a feeding attempt was abandoned.
// Failures are local to one organism's turn and never stop the day.
type Failure uint8

const (
	FailNone          Failure = iota
	FailSelfHunt              // Hunter is alone in the snapshot
	FailCannibalism           // Next organism is the hunter's own species
	FailPreyTooStrong         // Prey is at least as energetic and as fast
)

// Message returns the line printed when the failure is reported.
func (f Failure) Message() string {
	switch f {
	case FailSelfHunt:
		return "Self-hunting is not allowed"
	case FailCannibalism:
		return "Cannibalism is not allowed"
	case FailPreyTooStrong:
		return "The prey is too strong or too fast to attack"
	default:
		return ""
	}
}

// String returns a short identifier for logs and CSV output.
func (f Failure) String() string {
	switch f {
	case FailNone:
		return "none"
	case FailSelfHunt:
		return "self_hunt"
	case FailCannibalism:
		return "cannibalism"
	case FailPreyTooStrong:
		return "prey_too_strong"
	default:
		return "unknown"
	}
}

// MarshalText writes the failure identifier.
func (f Failure) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FeedResult describes one organism's feeding turn.
type FeedResult struct {
	ActorID uint32
	Skipped bool // Organism was already dead when its turn came

	Grazed float32 // Grass eaten (0 when the pool was too low or the kind does not graze)

	Hunted   bool   // A hunt succeeded
	PreyID   uint32 // Set when a prey was chosen, even if the hunt then failed
	HuntGain float32

	Failure Failure
}

// Graze feeds a from the pool if the pool holds at least a tenth of a's weight.
// Returns the amount eaten; 0 means the pool was too low, which is not a failure.
func Graze(a Actor, pool *ResourcePool) float32 {
	cost := a.Weight() * grazeFraction
	if pool.Quantity() < cost {
		return 0
	}
	a.SetEnergy(a.Energy() + cost)
	pool.Deduct(cost)
	return cost
}

// ChoosePrey picks the organism after idx in the snapshot, wrapping to the first.
func ChoosePrey(snapshot []Actor, idx int) (int, Failure) {
	if len(snapshot) == 1 {
		return -1, FailSelfHunt
	}
	preyIdx := (idx + 1) % len(snapshot)
	if snapshot[preyIdx].Species() == snapshot[idx].Species() {
		return preyIdx, FailCannibalism
	}
	return preyIdx, FailNone
}

// Hunt lets hunter attack prey. Ties in both energy and speed go to the prey.
// On success the hunter gains the prey's weight and the prey dies immediately.
func Hunt(hunter, prey Actor) (float32, Failure) {
	if hunter.Energy() <= prey.Energy() && hunter.Speed() <= prey.Speed() {
		return 0, FailPreyTooStrong
	}
	gain := prey.Weight()
	hunter.SetEnergy(hunter.Energy() + gain)
	prey.SetEnergy(components.MinEnergy)
	return gain, FailNone
}

// strategy runs one feeding turn for a live organism.
type strategy func(snapshot []Actor, idx int, pool *ResourcePool, res *FeedResult)

var strategies = map[components.Kind]strategy{
	components.KindGrazer: grazeOnly,
	components.KindHunter: huntOnly,
	components.KindBoth:   grazeThenHunt,
}

func grazeOnly(snapshot []Actor, idx int, pool *ResourcePool, res *FeedResult) {
	res.Grazed = Graze(snapshot[idx], pool)
}

func huntOnly(snapshot []Actor, idx int, _ *ResourcePool, res *FeedResult) {
	preyIdx, fail := ChoosePrey(snapshot, idx)
	if preyIdx >= 0 {
		res.PreyID = snapshot[preyIdx].ID()
	}
	if fail != FailNone {
		res.Failure = fail
		return
	}
	gain, fail := Hunt(snapshot[idx], snapshot[preyIdx])
	if fail != FailNone {
		res.Failure = fail
		return
	}
	res.Hunted = true
	res.HuntGain = gain
}

func grazeThenHunt(snapshot []Actor, idx int, pool *ResourcePool, res *FeedResult) {
	grazeOnly(snapshot, idx, pool, res)
	huntOnly(snapshot, idx, pool, res)
}

// Feed runs the feeding turn of the organism at idx in the day's snapshot.
// Dead organisms are skipped without touching any state.
func Feed(snapshot []Actor, idx int, pool *ResourcePool) FeedResult {
	a := snapshot[idx]
	res := FeedResult{ActorID: a.ID()}
	if a.IsDead() {
		res.Skipped = true
		return res
	}
	if run, ok := strategies[a.Kind()]; ok {
		run(snapshot, idx, pool, &res)
	}
	return res
}
