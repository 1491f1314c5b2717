package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridlife/systems"
)

// Step advances the world by dt time units in fixed order: every cell
// regenerates, every lifeform updates (alive ones run the behavior state
// machine, dead ones only advance their fade timer), fully faded corpses
// are pruned, and the seasonal clock advances. The pass is atomic; there
// are no suspension points inside a tick.
func (w *World) Step(dt float64) {
	// 1. Cells, in fixed x-major order.
	for x := 0; x < w.grid.W; x++ {
		for y := 0; y < w.grid.H; y++ {
			s := w.grid.At(x, y)
			wasDepleting := s.Depleting()
			s.RegenerateFood(dt, w.timePeriod)
			if !wasDepleting && s.Depleting() && w.collector != nil {
				w.collector.RecordDepletion()
			}
		}
	}

	// 2. Lifeforms, in roster order. Children spawned this tick are
	// appended past n and first update next tick.
	n := len(w.roster)
	for i := 0; i < n; i++ {
		e := w.roster[i]
		vit := w.vitMap.Get(e)

		if !vit.Alive {
			if vit.DeathTimer >= 0 {
				vit.DeathTimer += dt
			}
			continue
		}

		pos := w.posMap.Get(e)
		gen := w.genMap.Get(e)
		cell := w.grid.At(pos.X, pos.Y)
		from := *pos

		out := systems.UpdateLifeform(vit, gen, pos, cell, w.grid, w.streams.Movement, dt, w.timePeriod)
		if out.Moved {
			w.moveOccupant(e, from, *pos)
			if w.collector != nil {
				w.collector.RecordMove()
			}
			w.resolveEncounter(e)
		}
		if out.Died {
			if w.collector != nil {
				w.collector.RecordStarvation()
			}
			continue
		}

		if vit.Alive && systems.ShouldReproduce(vit, w.grid.At(pos.X, pos.Y), w.streams.Lifeform) {
			maxHealth, threshold, fps := systems.ChildTraits(vit, gen, w.streams.Lifeform)
			w.spawn(pos.X, pos.Y, maxHealth, threshold, fps)
			if w.collector != nil {
				w.collector.RecordBirth()
			}
		}
	}

	// 3. Prune fully faded corpses, preserving roster order.
	w.pruneFaded()

	// 4. Advance the clocks.
	w.timePeriod += dt * w.cfg.Grid.TimeScale
	w.simTime += dt
	w.tick++
	if w.collector != nil {
		w.collector.Advance(dt)
	}
}

// resolveEncounter checks the mover's square for another living occupant
// and resolves a potential fight. Encounters are combat-stream draws; the
// displaced loser moves via the movement stream. A loser that cannot be
// displaced forces extra exchange rounds, bounded by the retry budget,
// after which both combatants stay in place.
func (w *World) resolveEncounter(mover ecs.Entity) {
	pos := *w.posMap.Get(mover)
	other, ok := w.firstOtherAliveAt(pos, mover)
	if !ok {
		return
	}
	if !systems.Engage(w.streams.Combat) {
		return
	}
	if w.collector != nil {
		w.collector.RecordFight()
	}

	a := w.vitMap.Get(mover)
	b := w.vitMap.Get(other)
	aFlee := systems.FleeThreshold(a, w.streams.Combat)
	bFlee := systems.FleeThreshold(b, w.streams.Combat)

	loser := systems.FightRounds(a, b, aFlee, bFlee, w.streams.Combat)

	for attempt := 0; loser != nil && attempt < w.cfg.Combat.DisplaceRetries; attempt++ {
		loserEnt := mover
		if loser == b {
			loserEnt = other
		}
		if w.displace(loserEnt) {
			loser = nil
			break
		}
		// Forced round: the two cannot coexist, so they keep trading blows.
		systems.ExchangeRound(a, b, w.streams.Combat)
		if !a.Alive || !b.Alive {
			loser = nil
			break
		}
		if a.Health <= aFlee && b.Health > bFlee {
			loser = a
		} else if b.Health <= bFlee && a.Health > aFlee {
			loser = b
		}
	}
	// Retry budget exhausted with a surviving loser: both stay put.

	if w.collector != nil {
		if !a.Alive {
			w.collector.RecordCombatDeath()
		}
		if !b.Alive {
			w.collector.RecordCombatDeath()
		}
	}
}

// displace force-moves a combat loser to a random adjacent square. The
// draw may land on the current square or fail the movement gate; either
// way the displacement counts as failed.
func (w *World) displace(e ecs.Entity) bool {
	pos := w.posMap.Get(e)
	vit := w.vitMap.Get(e)
	gen := w.genMap.Get(e)
	from := *pos

	nx, ny := systems.StepTarget(*pos, w.grid, w.streams.Movement)
	if nx == from.X && ny == from.Y {
		return false
	}
	if !systems.MoveTo(vit, gen, pos, nx, ny, w.timePeriod) {
		return false
	}
	w.moveOccupant(e, from, *pos)
	return true
}

// pruneFaded removes lifeforms whose fade timer passed the cutoff.
func (w *World) pruneFaded() {
	fade := w.cfg.Lifeform.FadeTime
	kept := w.roster[:0]
	for _, e := range w.roster {
		vit := w.vitMap.Get(e)
		if !vit.Alive && vit.DeathTimer >= fade {
			w.dropOccupant(e, *w.posMap.Get(e))
			w.mapper.Remove(e)
			continue
		}
		kept = append(kept, e)
	}
	w.roster = kept
}
