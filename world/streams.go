package world

import (
	"math/rand"

	"github.com/pthm-cable/gridlife/config"
)

// Streams bundles the independent seeded RNG streams the engine draws from.
// Keeping one stream per concern is the reproducibility contract: runs with
// identical seeds and identical dt sequences replay bit for bit.
//
// Lifeform behavior and reproduction draws interleave on the shared
// Lifeform stream in agent-processing order, which is why the coordinator
// iterates agents in a fixed roster order.
type Streams struct {
	Habitat  *rand.Rand // habitat generation
	Food     *rand.Rand // parent stream; seeds one sub-stream per square
	Lifeform *rand.Rand // trait generation, reproduction
	Combat   *rand.Rand // engagement, flee thresholds, damage rolls
	Movement *rand.Rand // step direction draws, forced displacement
}

// NewStreams builds the stream set from configured seeds.
func NewStreams(seeds config.SeedsConfig) *Streams {
	return &Streams{
		Habitat:  rand.New(rand.NewSource(seeds.Habitat)),
		Food:     rand.New(rand.NewSource(seeds.Food)),
		Lifeform: rand.New(rand.NewSource(seeds.Lifeform)),
		Combat:   rand.New(rand.NewSource(seeds.Combat)),
		Movement: rand.New(rand.NewSource(seeds.Movement)),
	}
}
