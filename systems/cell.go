package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/gridlife/config"
	"github.com/pthm-cable/gridlife/season"
)

// GridSquare is one grid position's food state. Cells are created once at
// world init and persist for the grid's lifetime. Each square owns a private
// RNG seeded once from the food parent stream; it drives only this square's
// depletion events and is never reseeded.
type GridSquare struct {
	FoodAmount    float64
	MaxFood       float64
	BaseRegenRate float64 // immutable habitat baseline
	RegenRate     float64 // habitat-adjusted rate

	// DepletionTimer <= 0 means no active depletion event.
	DepletionTimer    float64
	DepletionDuration float64

	rng *rand.Rand
}

// NewGridSquare creates an empty square. Habitat generation assigns the
// food capacity and regeneration rates afterward.
func NewGridSquare(rng *rand.Rand) *GridSquare {
	return &GridSquare{rng: rng}
}

// RegenerateFood advances the square's food state by dt at the given time
// period. Depletion events drain food independent of the seasonal ceiling;
// otherwise food grows toward the seasonal maximum, or contracts slowly
// toward it when a winter multiplier has pulled the ceiling below the
// current amount.
func (s *GridSquare) RegenerateFood(dt, timePeriod float64) {
	cfg := config.Cfg()
	mult := season.FoodMultiplier(timePeriod)

	if s.DepletionTimer <= 0 && s.rng.Float64() < cfg.Cell.DepletionChance {
		span := cfg.Cell.DepletionMaxDuration - cfg.Cell.DepletionMinDuration
		s.DepletionDuration = cfg.Cell.DepletionMinDuration + s.rng.Float64()*span
		s.DepletionTimer = s.DepletionDuration
	}

	if s.DepletionTimer > 0 {
		s.FoodAmount -= s.RegenRate * mult * cfg.Cell.DepletionDrainFactor * dt
		if s.FoodAmount < 0 {
			s.FoodAmount = 0
		}
		s.DepletionTimer -= dt
		return
	}

	seasonalMax := s.MaxFood * mult
	if s.FoodAmount < seasonalMax {
		s.FoodAmount = math.Min(seasonalMax, s.FoodAmount+s.RegenRate*mult*dt)
	} else if mult < 1.0 && s.FoodAmount > seasonalMax {
		// Winter contraction decays toward the ceiling at a slower fixed
		// rate and never undershoots it.
		s.FoodAmount = math.Max(seasonalMax, s.FoodAmount-s.RegenRate*cfg.Cell.WinterDecayFactor*dt)
	}
}

// ConsumeFood removes up to requested food and returns the amount actually
// consumed. Food never goes negative.
func (s *GridSquare) ConsumeFood(requested float64) float64 {
	consumed := math.Min(requested, s.FoodAmount)
	if consumed < 0 {
		consumed = 0
	}
	s.FoodAmount -= consumed
	return consumed
}

// HasFood reports whether the square holds a usable amount of food.
// The threshold keeps lifeforms from scraping at trace amounts.
func (s *GridSquare) HasFood() bool {
	return s.FoodAmount > config.Cfg().Cell.HasFoodThreshold
}

// Depleting reports whether a depletion event is active.
func (s *GridSquare) Depleting() bool {
	return s.DepletionTimer > 0
}
