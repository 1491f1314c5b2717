// Package telemetry accumulates simulation events into time windows and
// writes them as structured logs and CSV records.
package telemetry

// Collector accumulates events within a simulation-time window and
// produces WindowStats on flush. It carries its own clock, advanced by the
// world once per tick.
type Collector struct {
	window  float64
	elapsed float64 // time into the current window
	simTime float64 // total accumulated time

	births       int
	starvations  int
	combatDeaths int
	fights       int
	moves        int
	depletions   int
}

// NewCollector creates a collector with the given window length in
// simulation time units. Windows shorter than one tick flush every tick.
func NewCollector(window float64) *Collector {
	return &Collector{window: window}
}

// Advance moves the collector clock forward by dt.
func (c *Collector) Advance(dt float64) {
	c.elapsed += dt
	c.simTime += dt
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush() bool {
	return c.elapsed >= c.window
}

// RecordBirth records a reproduction event.
func (c *Collector) RecordBirth() { c.births++ }

// RecordStarvation records a death from hunger or a failed escape move.
func (c *Collector) RecordStarvation() { c.starvations++ }

// RecordCombatDeath records a death in combat.
func (c *Collector) RecordCombatDeath() { c.combatDeaths++ }

// RecordFight records an encounter that escalated to a fight.
func (c *Collector) RecordFight() { c.fights++ }

// RecordMove records a completed movement step.
func (c *Collector) RecordMove() { c.moves++ }

// RecordDepletion records the start of a cell depletion event.
func (c *Collector) RecordDepletion() { c.depletions++ }

// Flush produces WindowStats from the window's events plus the sampled
// population state, then resets counters for the next window.
func (c *Collector) Flush(tick int64, population int, healths []float64, totalFood, timePeriod float64, seasonName string) WindowStats {
	stats := WindowStats{
		Tick:         tick,
		SimTime:      c.simTime,
		TimePeriod:   timePeriod,
		Season:       seasonName,
		Population:   population,
		Births:       c.births,
		Starvations:  c.starvations,
		CombatDeaths: c.combatDeaths,
		Fights:       c.fights,
		Moves:        c.moves,
		Depletions:   c.depletions,
		TotalFood:    totalFood,
	}
	stats.HealthMean, stats.HealthStd, stats.HealthP10, stats.HealthP50, stats.HealthP90 = ComputeHealthStats(healths)

	c.elapsed = 0
	c.births = 0
	c.starvations = 0
	c.combatDeaths = 0
	c.fights = 0
	c.moves = 0
	c.depletions = 0
	return stats
}
