package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/gridlife/components"
	"github.com/pthm-cable/gridlife/config"
	"github.com/pthm-cable/gridlife/season"
)

// StepOutcome reports what happened during one behavior update.
type StepOutcome struct {
	Ate   float64 // food actually consumed
	Moved bool
	Died  bool
	From  components.Position
	To    components.Position
}

// CanMove reports whether the lifeform clears both movement gates: health
// above its heritable threshold, and health covering the current seasonal
// movement cost. Both must hold independently.
func CanMove(v *components.Vitals, gen *components.Genome, timePeriod float64) bool {
	cost := config.Cfg().Lifeform.MovementCost * season.CostMultiplier(timePeriod)
	return v.Health > gen.MovementThreshold && v.Health >= cost
}

// MoveTo re-validates the movement gate, deducts the seasonal movement cost
// and updates the position. Returns whether the move occurred. The cost is
// floored at zero health; the gate prevents a move that health cannot cover.
func MoveTo(v *components.Vitals, gen *components.Genome, pos *components.Position, x, y int, timePeriod float64) bool {
	if !CanMove(v, gen, timePeriod) {
		return false
	}
	cost := config.Cfg().Lifeform.MovementCost * season.CostMultiplier(timePeriod)
	v.Health = math.Max(0, v.Health-cost)
	pos.X = x
	pos.Y = y
	return true
}

// StepTarget picks a random single-step target from the current position.
// Each axis is drawn independently from {-1, 0, +1}; a step that would
// leave the grid is re-biased inward.
func StepTarget(pos components.Position, grid *Grid, movementRNG *rand.Rand) (int, int) {
	dx := movementRNG.Intn(3) - 1
	dy := movementRNG.Intn(3) - 1
	return biasInward(pos.X, dx, grid.W), biasInward(pos.Y, dy, grid.H)
}

// biasInward flips a step that would cross the grid edge, then clamps for
// degenerate single-cell axes.
func biasInward(coord, delta, limit int) int {
	n := coord + delta
	if n < 0 || n >= limit {
		n = coord - delta
	}
	if n < 0 {
		n = 0
	}
	if n >= limit {
		n = limit - 1
	}
	return n
}

// UpdateLifeform runs one behavior tick for an alive lifeform against its
// current square: feed if the square has food, otherwise attempt a random
// single-step move. A failed move with no food kills the lifeform on the
// spot. Flat hunger decay applies after either branch.
func UpdateLifeform(
	v *components.Vitals,
	gen *components.Genome,
	pos *components.Position,
	cell *GridSquare,
	grid *Grid,
	movementRNG *rand.Rand,
	dt, timePeriod float64,
) StepOutcome {
	cfg := config.Cfg()
	out := StepOutcome{From: *pos, To: *pos}

	if cell.HasFood() {
		consumed := cell.ConsumeFood(float64(gen.FoodPerSecond) * dt)
		v.Health = math.Min(v.MaxHealth, v.Health+consumed*cfg.Lifeform.FoodToHealth)
		out.Ate = consumed
	} else {
		nx, ny := StepTarget(*pos, grid, movementRNG)
		if MoveTo(v, gen, pos, nx, ny, timePeriod) {
			out.Moved = true
			out.To = *pos
		} else {
			// Starving and unable to move: dead this tick.
			v.Kill()
			out.Died = true
			return out
		}
	}

	v.Health -= cfg.Lifeform.HungerRate * dt
	if v.Health <= 0 {
		v.Health = 0
		v.Kill()
		out.Died = true
	}
	return out
}
