// Package world owns the grid, the lifeform collection, and the tick loop.
// It is the only component that mutates shared state; cells and lifeforms
// never hold references to each other.
package world

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridlife/components"
	"github.com/pthm-cable/gridlife/config"
	"github.com/pthm-cable/gridlife/systems"
	"github.com/pthm-cable/gridlife/telemetry"
)

// World is the simulation coordinator. Lifeforms live as ECS entities; the
// roster slice fixes their processing order (creation order) because ark's
// archetype iteration order is not contractual after removals and the
// shared RNG streams require a stable order to stay reproducible.
type World struct {
	cfg *config.Config

	ecs    *ecs.World
	mapper *ecs.Map4[components.Position, components.Vitals, components.Genome, components.Organism]
	posMap *ecs.Map1[components.Position]
	vitMap *ecs.Map1[components.Vitals]
	genMap *ecs.Map1[components.Genome]
	orgMap *ecs.Map1[components.Organism]

	grid    *systems.Grid
	roster  []ecs.Entity
	streams *Streams

	// Occupancy index: grid position -> entities, maintained by the
	// coordinator so cells stay pointer-free.
	occupancy map[components.Position][]ecs.Entity

	timePeriod float64
	simTime    float64
	tick       int64
	nextID     uint64

	collector *telemetry.Collector // optional
}

// New constructs a world from the given config: grid with habitat, seeded
// RNG streams, and the initial population. Returns an error wrapping
// config.ErrInvalidConfig without building a partial world.
func New(cfg *config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating world: %w", err)
	}

	ew := ecs.NewWorld()
	w := &World{
		cfg: cfg,
		ecs: ew,
		mapper: ecs.NewMap4[
			components.Position,
			components.Vitals,
			components.Genome,
			components.Organism,
		](ew),
		posMap:    ecs.NewMap1[components.Position](ew),
		vitMap:    ecs.NewMap1[components.Vitals](ew),
		genMap:    ecs.NewMap1[components.Genome](ew),
		orgMap:    ecs.NewMap1[components.Organism](ew),
		streams:   NewStreams(cfg.Seeds),
		occupancy: make(map[components.Position][]ecs.Entity),
	}

	w.grid = systems.NewGrid(cfg.Grid.Width, cfg.Grid.Height, w.streams.Food)
	w.grid.GenerateHabitat(w.streams.Habitat)
	w.placeInitialPopulation()

	slog.Info("world created",
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"population", len(w.roster),
	)
	return w, nil
}

// AttachCollector wires a telemetry collector into the world's event hooks.
func (w *World) AttachCollector(c *telemetry.Collector) {
	w.collector = c
}

// Grid exposes the cell grid for read-only inspection.
func (w *World) Grid() *systems.Grid { return w.grid }

// TimePeriod returns the current position on the seasonal clock.
func (w *World) TimePeriod() float64 { return w.timePeriod }

// SimTime returns accumulated simulation time in dt units.
func (w *World) SimTime() float64 { return w.simTime }

// Tick returns the number of completed steps.
func (w *World) Tick() int64 { return w.tick }

// placeInitialPopulation seeds lifeforms at random positions, skipping
// squares already at the per-cell room limit. Placement attempts are
// bounded so a crowded grid cannot loop forever.
func (w *World) placeInitialPopulation() {
	cfg := w.cfg
	for i := 0; i < cfg.Population.Initial; i++ {
		for attempt := 0; attempt < cfg.Population.PlacementAttempts; attempt++ {
			x := w.streams.Lifeform.Intn(cfg.Grid.Width)
			y := w.streams.Lifeform.Intn(cfg.Grid.Height)
			if w.aliveCountAt(x, y) >= cfg.Population.MaxPerCell {
				continue
			}
			maxHealth := w.uniformTrait(cfg.Lifeform.MaxHealthMin, cfg.Lifeform.MaxHealthMax)
			threshold := w.uniformTrait(cfg.Lifeform.MovementThresholdMin, cfg.Lifeform.MovementThresholdMax)
			fps := w.intTrait(cfg.Lifeform.FoodPerSecondMin, cfg.Lifeform.FoodPerSecondMax)
			w.spawn(x, y, maxHealth, threshold, fps)
			break
		}
	}
}

func (w *World) uniformTrait(lo, hi float64) float64 {
	return lo + w.streams.Lifeform.Float64()*(hi-lo)
}

func (w *World) intTrait(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + w.streams.Lifeform.Intn(hi-lo+1)
}

// spawn creates a lifeform at full health and appends it to the roster.
func (w *World) spawn(x, y int, maxHealth, threshold float64, foodPerSecond int) ecs.Entity {
	id := w.nextID
	w.nextID++

	pos := components.Position{X: x, Y: y}
	vit := components.Vitals{Health: maxHealth, MaxHealth: maxHealth, Alive: true, DeathTimer: -1}
	gen := components.Genome{MovementThreshold: threshold, FoodPerSecond: foodPerSecond}
	org := components.Organism{ID: id}

	e := w.mapper.NewEntity(&pos, &vit, &gen, &org)
	w.roster = append(w.roster, e)
	w.occupancy[pos] = append(w.occupancy[pos], e)
	return e
}

// aliveCountAt counts living lifeforms at a position via the occupancy index.
func (w *World) aliveCountAt(x, y int) int {
	n := 0
	for _, e := range w.occupancy[components.Position{X: x, Y: y}] {
		if w.vitMap.Get(e).Alive {
			n++
		}
	}
	return n
}

// moveOccupant updates the occupancy index after a position change.
func (w *World) moveOccupant(e ecs.Entity, from, to components.Position) {
	if from == to {
		return
	}
	slot := w.occupancy[from]
	for i, o := range slot {
		if o == e {
			w.occupancy[from] = append(slot[:i], slot[i+1:]...)
			break
		}
	}
	w.occupancy[to] = append(w.occupancy[to], e)
}

// dropOccupant removes an entity from the occupancy index.
func (w *World) dropOccupant(e ecs.Entity, at components.Position) {
	slot := w.occupancy[at]
	for i, o := range slot {
		if o == e {
			w.occupancy[at] = append(slot[:i], slot[i+1:]...)
			return
		}
	}
}

// firstOtherAliveAt returns the first living occupant at pos other than
// self, in roster order, for deterministic encounter selection.
func (w *World) firstOtherAliveAt(pos components.Position, self ecs.Entity) (ecs.Entity, bool) {
	var (
		best   ecs.Entity
		bestID uint64
		found  bool
	)
	for _, e := range w.occupancy[pos] {
		if e == self {
			continue
		}
		if !w.vitMap.Get(e).Alive {
			continue
		}
		id := w.orgMap.Get(e).ID
		if !found || id < bestID {
			best, bestID, found = e, id, true
		}
	}
	return best, found
}
