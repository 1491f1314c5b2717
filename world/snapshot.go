package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridlife/components"
	"github.com/pthm-cable/gridlife/season"
	"github.com/pthm-cable/gridlife/systems"
)

// CellSnapshot is a read-only view of one square, with the seasonal values
// computed from the current time period.
type CellSnapshot struct {
	X, Y               int
	FoodAmount         float64
	MaxFood            float64
	RegenRate          float64
	SeasonalMaxFood    float64
	SeasonalRegenRate  float64
	DepletionRemaining float64 // 0 when no event is active
}

// AgentSnapshot is a read-only view of one lifeform.
type AgentSnapshot struct {
	ID                uint64
	X, Y              int
	Alive             bool
	Health            float64
	MaxHealth         float64
	MovementThreshold float64
	CanMove           bool
	DeathTimer        float64
}

// AggregateStats summarizes the population and the seasonal clock. An
// extinct population is a valid terminal state, not an error.
type AggregateStats struct {
	AliveCount    int
	AverageHealth float64
	TimePeriod    float64
	Season        string
}

// CellSnapshot returns the state of the square at (x, y).
// The ok result is false for out-of-range coordinates.
func (w *World) CellSnapshot(x, y int) (CellSnapshot, bool) {
	if !w.grid.InBounds(x, y) {
		return CellSnapshot{}, false
	}
	s := w.grid.At(x, y)
	mult := season.FoodMultiplier(w.timePeriod)
	snap := CellSnapshot{
		X: x, Y: y,
		FoodAmount:        s.FoodAmount,
		MaxFood:           s.MaxFood,
		RegenRate:         s.RegenRate,
		SeasonalMaxFood:   s.MaxFood * mult,
		SeasonalRegenRate: s.RegenRate * mult,
	}
	if s.Depleting() {
		snap.DepletionRemaining = s.DepletionTimer
	}
	return snap, true
}

// AgentsAt returns snapshots for every lifeform - alive or still fading -
// at (x, y), in roster order.
func (w *World) AgentsAt(x, y int) []AgentSnapshot {
	var out []AgentSnapshot
	for _, e := range w.roster {
		pos := w.posMap.Get(e)
		if pos.X != x || pos.Y != y {
			continue
		}
		out = append(out, w.snapshotOf(e, pos))
	}
	return out
}

// Agents returns snapshots for the whole roster, in roster order.
func (w *World) Agents() []AgentSnapshot {
	out := make([]AgentSnapshot, 0, len(w.roster))
	for _, e := range w.roster {
		out = append(out, w.snapshotOf(e, w.posMap.Get(e)))
	}
	return out
}

func (w *World) snapshotOf(e ecs.Entity, pos *components.Position) AgentSnapshot {
	vit := w.vitMap.Get(e)
	gen := w.genMap.Get(e)
	org := w.orgMap.Get(e)
	return AgentSnapshot{
		ID:                org.ID,
		X:                 pos.X,
		Y:                 pos.Y,
		Alive:             vit.Alive,
		Health:            vit.Health,
		MaxHealth:         vit.MaxHealth,
		MovementThreshold: gen.MovementThreshold,
		CanMove:           vit.Alive && systems.CanMove(vit, gen, w.timePeriod),
		DeathTimer:        vit.DeathTimer,
	}
}

// AggregateStats computes population-level statistics for the current tick.
func (w *World) AggregateStats() AggregateStats {
	stats := AggregateStats{
		TimePeriod: w.timePeriod,
		Season:     season.Name(w.timePeriod),
	}
	var total float64
	for _, e := range w.roster {
		vit := w.vitMap.Get(e)
		if vit.Alive {
			stats.AliveCount++
			total += vit.Health
		}
	}
	if stats.AliveCount > 0 {
		stats.AverageHealth = total / float64(stats.AliveCount)
	}
	return stats
}

// AliveHealths returns the health of every living lifeform in roster
// order, for telemetry distribution stats.
func (w *World) AliveHealths() []float64 {
	var out []float64
	for _, e := range w.roster {
		vit := w.vitMap.Get(e)
		if vit.Alive {
			out = append(out, vit.Health)
		}
	}
	return out
}

// TotalFood sums food across the grid.
func (w *World) TotalFood() float64 {
	var total float64
	for x := 0; x < w.grid.W; x++ {
		for y := 0; y < w.grid.H; y++ {
			total += w.grid.At(x, y).FoodAmount
		}
	}
	return total
}
