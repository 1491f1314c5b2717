package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/gridlife/components"
)

// Movement cost at the defaults is 5.0, scaled by the seasonal curve:
// 2.5 at the summer peak (t=26), 7.5 at the winter trough (t=0).

func TestCanMove_Gates(t *testing.T) {
	tests := []struct {
		name       string
		health     float64
		threshold  float64
		timePeriod float64
		want       bool
	}{
		{"both gates clear", 20, 10, 26, true},
		{"below threshold", 9, 10, 26, false},
		{"at threshold", 10, 10, 26, false},
		{"cannot afford winter cost", 7, 2, 0, false},
		{"can afford summer cost", 7, 2, 26, true},
		{"exactly the cost", 2.5, 1, 26, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &components.Vitals{Health: tt.health, MaxHealth: 50, Alive: true, DeathTimer: -1}
			gen := &components.Genome{MovementThreshold: tt.threshold}
			if got := CanMove(v, gen, tt.timePeriod); got != tt.want {
				t.Errorf("CanMove(health=%v, threshold=%v, t=%v) = %v, want %v",
					tt.health, tt.threshold, tt.timePeriod, got, tt.want)
			}
		})
	}
}

func TestMoveTo_DeductsSeasonalCost(t *testing.T) {
	v := &components.Vitals{Health: 20, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 5}
	pos := &components.Position{X: 2, Y: 2}

	if !MoveTo(v, gen, pos, 3, 2, 26) {
		t.Fatal("expected move to succeed")
	}
	if pos.X != 3 || pos.Y != 2 {
		t.Errorf("position = (%d, %d), want (3, 2)", pos.X, pos.Y)
	}
	if math.Abs(v.Health-17.5) > 1e-9 {
		t.Errorf("health after summer move = %f, want 17.5", v.Health)
	}
}

func TestMoveTo_GateBlocks(t *testing.T) {
	v := &components.Vitals{Health: 4, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 10}
	pos := &components.Position{X: 2, Y: 2}

	if MoveTo(v, gen, pos, 3, 2, 26) {
		t.Fatal("expected move to fail below the threshold")
	}
	if pos.X != 2 || pos.Y != 2 {
		t.Errorf("blocked move changed position to (%d, %d)", pos.X, pos.Y)
	}
	if v.Health != 4 {
		t.Errorf("blocked move changed health to %f", v.Health)
	}
}

func TestStepTarget_StaysInBounds(t *testing.T) {
	grid := NewGrid(5, 5, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(24680))

	corners := []components.Position{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}}
	for _, pos := range corners {
		for i := 0; i < 200; i++ {
			nx, ny := StepTarget(pos, grid, rng)
			if !grid.InBounds(nx, ny) {
				t.Fatalf("step from (%d, %d) landed out of bounds at (%d, %d)", pos.X, pos.Y, nx, ny)
			}
			if absInt(nx-pos.X) > 1 || absInt(ny-pos.Y) > 1 {
				t.Fatalf("step from (%d, %d) to (%d, %d) exceeds one square", pos.X, pos.Y, nx, ny)
			}
		}
	}
}

func TestStepTarget_SingleCellGrid(t *testing.T) {
	grid := NewGrid(1, 1, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 50; i++ {
		nx, ny := StepTarget(components.Position{}, grid, rng)
		if nx != 0 || ny != 0 {
			t.Fatalf("single-cell grid produced step to (%d, %d)", nx, ny)
		}
	}
}

// ---------- UpdateLifeform ----------

func TestUpdateLifeform_FeedsAndGains(t *testing.T) {
	grid := NewGrid(3, 3, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(2))

	v := &components.Vitals{Health: 20, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 5, FoodPerSecond: 4}
	pos := &components.Position{X: 1, Y: 1}
	cell := grid.At(1, 1)
	cell.FoodAmount = 100

	out := UpdateLifeform(v, gen, pos, cell, grid, rng, 1.0, 26)

	// Ate 4 food, gained 2 health, lost 1 to hunger.
	if math.Abs(out.Ate-4.0) > 1e-9 {
		t.Errorf("ate %f, want 4.0", out.Ate)
	}
	if math.Abs(v.Health-21.0) > 1e-9 {
		t.Errorf("health %f, want 21.0", v.Health)
	}
	if out.Moved || out.Died {
		t.Errorf("feeding tick should not move or die: %+v", out)
	}
	if math.Abs(cell.FoodAmount-96.0) > 1e-9 {
		t.Errorf("cell food %f, want 96.0", cell.FoodAmount)
	}
}

func TestUpdateLifeform_HealthClampsAtMax(t *testing.T) {
	grid := NewGrid(3, 3, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(2))

	v := &components.Vitals{Health: 49.8, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 5, FoodPerSecond: 8}
	pos := &components.Position{X: 0, Y: 0}
	cell := grid.At(0, 0)
	cell.FoodAmount = 500

	UpdateLifeform(v, gen, pos, cell, grid, rng, 1.0, 26)

	// Gain clamps at max before the hunger decay applies.
	if math.Abs(v.Health-49.0) > 1e-9 {
		t.Errorf("health %f, want 49.0 (max 50 minus hunger)", v.Health)
	}
}

func TestUpdateLifeform_StarvingAndStuckDies(t *testing.T) {
	grid := NewGrid(3, 3, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(2))

	// Below its movement threshold on an empty square: dead this tick.
	v := &components.Vitals{Health: 5, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 10, FoodPerSecond: 4}
	pos := &components.Position{X: 1, Y: 1}
	cell := grid.At(1, 1)
	cell.FoodAmount = 0

	out := UpdateLifeform(v, gen, pos, cell, grid, rng, 1.0, 26)

	if !out.Died {
		t.Fatal("expected death when starving and unable to move")
	}
	if v.Alive {
		t.Error("vitals still alive after death outcome")
	}
	if v.DeathTimer != 0 {
		t.Errorf("death timer %f, want 0 at the moment of death", v.DeathTimer)
	}
}

func TestUpdateLifeform_MovesWhenNoFood(t *testing.T) {
	grid := NewGrid(3, 3, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(24680))

	v := &components.Vitals{Health: 30, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 5, FoodPerSecond: 4}
	pos := &components.Position{X: 1, Y: 1}
	cell := grid.At(1, 1)
	cell.FoodAmount = 0

	out := UpdateLifeform(v, gen, pos, cell, grid, rng, 1.0, 26)

	if out.Died {
		t.Fatal("healthy lifeform should survive a move tick")
	}
	if !out.Moved {
		t.Fatal("expected a move attempt on an empty square")
	}
	if out.From != (components.Position{X: 1, Y: 1}) {
		t.Errorf("outcome From = %+v, want (1, 1)", out.From)
	}
	if out.To != *pos {
		t.Errorf("outcome To = %+v does not match position %+v", out.To, *pos)
	}
	// Move cost 2.5 plus hunger 1.0.
	if math.Abs(v.Health-26.5) > 1e-9 {
		t.Errorf("health %f, want 26.5", v.Health)
	}
}

func TestUpdateLifeform_HungerKillsAfterMove(t *testing.T) {
	grid := NewGrid(3, 3, rand.New(rand.NewSource(1)))
	rng := rand.New(rand.NewSource(24680))

	// Enough to pay the summer move cost but not the hunger decay.
	v := &components.Vitals{Health: 3, MaxHealth: 50, Alive: true, DeathTimer: -1}
	gen := &components.Genome{MovementThreshold: 1, FoodPerSecond: 4}
	pos := &components.Position{X: 1, Y: 1}
	cell := grid.At(1, 1)
	cell.FoodAmount = 0

	out := UpdateLifeform(v, gen, pos, cell, grid, rng, 1.0, 26)

	if !out.Died {
		t.Fatal("expected hunger death after an unaffordable tick")
	}
	if v.Health != 0 {
		t.Errorf("health %f, want clamped to 0", v.Health)
	}
	if v.Alive {
		t.Error("vitals still alive after hunger death")
	}
}
