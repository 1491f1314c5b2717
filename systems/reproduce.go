package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/gridlife/components"
	"github.com/pthm-cable/gridlife/config"
)

// ShouldReproduce evaluates the reproduction gate for one tick. Only
// lifeforms above the health gate qualify, and the success chance scales
// with the current food abundance of the host square: a fully rich square
// reaches the configured maximum chance.
func ShouldReproduce(v *components.Vitals, cell *GridSquare, behaviorRNG *rand.Rand) bool {
	cfg := config.Cfg()
	if v.Health < cfg.Reproduction.HealthGate*v.MaxHealth {
		return false
	}
	richness := math.Min(1, cell.FoodAmount/cfg.Reproduction.FoodRichScale)
	return behaviorRNG.Float64() < cfg.Reproduction.ChanceMax*richness
}

// ChildTraits derives a child's heritable traits from one parent: max
// health and movement threshold each get an independent uniform ±jitter
// multiplicative perturbation. The intake rate passes through unchanged.
// There is no crossover between two parents.
func ChildTraits(parentV *components.Vitals, parentG *components.Genome, behaviorRNG *rand.Rand) (maxHealth, threshold float64, foodPerSecond int) {
	jitter := config.Cfg().Reproduction.TraitJitter
	perturb := func(x float64) float64 {
		return x * (1 + (behaviorRNG.Float64()*2-1)*jitter)
	}
	return perturb(parentV.MaxHealth), perturb(parentG.MovementThreshold), parentG.FoodPerSecond
}
