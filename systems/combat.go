package systems

import (
	"math/rand"

	"github.com/pthm-cable/gridlife/components"
	"github.com/pthm-cable/gridlife/config"
)

// Engage decides whether an encounter between two co-located lifeforms
// escalates to a fight. Most encounters disengage with no effect.
func Engage(combatRNG *rand.Rand) bool {
	return combatRNG.Float64() < config.Cfg().Combat.EngageChance
}

// FleeThreshold draws the health floor below which a combatant breaks off.
// A zero threshold means it fights to the death; otherwise the floor is a
// uniform random fraction of current health.
func FleeThreshold(v *components.Vitals, combatRNG *rand.Rand) float64 {
	if combatRNG.Float64() < config.Cfg().Combat.FightToDeathChance {
		return 0
	}
	return combatRNG.Float64() * v.Health
}

// ExchangeRound runs one simultaneous exchange. Each side's damage is drawn
// uniformly from [0, maxDamage × health/maxHealth], so the relatively
// healthier combatant deals more expected damage. Both healths drop by the
// other's roll in the same round; a combatant at or below zero dies
// immediately.
func ExchangeRound(a, b *components.Vitals, combatRNG *rand.Rand) {
	maxDmg := config.Cfg().Combat.MaxRoundDamage
	dmgFromA := combatRNG.Float64() * maxDmg * a.HealthRatio()
	dmgFromB := combatRNG.Float64() * maxDmg * b.HealthRatio()

	a.Health -= dmgFromB
	b.Health -= dmgFromA

	if a.Health <= 0 {
		a.Health = 0
		a.Kill()
	}
	if b.Health <= 0 {
		b.Health = 0
		b.Kill()
	}
}

// FightRounds runs repeated simultaneous exchanges while both combatants
// remain above their flee thresholds. It ends on a death or when a side
// breaks off; the hard round cap guards against two regenerating stalemates
// that the probabilistic damage cannot separate.
//
// Returns the loser when both survive: the combatant that hit its flee
// threshold, or the one at lower health if both broke in the same round.
// Returns nil when the fight ended in a death (or the round cap fired).
func FightRounds(a, b *components.Vitals, aFlee, bFlee float64, combatRNG *rand.Rand) *components.Vitals {
	maxRounds := config.Cfg().Combat.MaxRounds
	for round := 0; round < maxRounds; round++ {
		if a.Health <= aFlee || b.Health <= bFlee {
			break
		}
		ExchangeRound(a, b, combatRNG)
		if !a.Alive || !b.Alive {
			return nil
		}
	}

	aBroke := a.Health <= aFlee
	bBroke := b.Health <= bFlee
	switch {
	case aBroke && bBroke:
		if a.Health <= b.Health {
			return a
		}
		return b
	case aBroke:
		return a
	case bBroke:
		return b
	default:
		return nil
	}
}
