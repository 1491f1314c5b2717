package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/gridlife/config"
)

func init() {
	config.MustInit("")
}

// withDepletionChance overrides the per-tick depletion probability for the
// duration of a test.
func withDepletionChance(t *testing.T, chance float64) {
	t.Helper()
	cfg := config.Cfg()
	old := cfg.Cell.DepletionChance
	cfg.Cell.DepletionChance = chance
	t.Cleanup(func() { cfg.Cell.DepletionChance = old })
}

// ---------- Regeneration ----------

func TestRegenerateFood_SummerGrowth(t *testing.T) {
	withDepletionChance(t, 0)
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 30
	s.RegenRate = 1.0
	s.FoodAmount = 0

	// Summer peak: food multiplier 1.6, so 10 units of time at regen 1.0
	// adds 16 food.
	s.RegenerateFood(10, 26)

	if math.Abs(s.FoodAmount-16.0) > 1e-9 {
		t.Errorf("expected 16.0 food after summer growth, got %f", s.FoodAmount)
	}
}

func TestRegenerateFood_ClampsAtSeasonalMax(t *testing.T) {
	withDepletionChance(t, 0)
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 30
	s.RegenRate = 1.0
	s.FoodAmount = 47

	// Seasonal max at t=26 is 30 * 1.6 = 48; growth must clamp there.
	s.RegenerateFood(10, 26)

	if math.Abs(s.FoodAmount-48.0) > 1e-9 {
		t.Errorf("expected clamp at seasonal max 48.0, got %f", s.FoodAmount)
	}
}

func TestRegenerateFood_WinterContraction(t *testing.T) {
	withDepletionChance(t, 0)
	cfg := config.Cfg()
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 30
	s.RegenRate = 1.0
	s.FoodAmount = 20

	// Winter: multiplier 0.4, seasonal max 12. Contraction runs at the
	// slower winter rate, not the full regen rate.
	s.RegenerateFood(10, 0)

	want := 20.0 - 1.0*cfg.Cell.WinterDecayFactor*10
	if math.Abs(s.FoodAmount-want) > 1e-9 {
		t.Errorf("expected contraction to %f, got %f", want, s.FoodAmount)
	}
}

func TestRegenerateFood_ContractionNeverUndershoots(t *testing.T) {
	withDepletionChance(t, 0)
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 30
	s.RegenRate = 1.0
	s.FoodAmount = 20

	// A huge dt must stop exactly at the seasonal max (12), not below it.
	s.RegenerateFood(1000, 0)

	if math.Abs(s.FoodAmount-12.0) > 1e-9 {
		t.Errorf("contraction undershot seasonal max: got %f, want 12.0", s.FoodAmount)
	}
}

// ---------- Depletion events ----------

func TestRegenerateFood_DepletionStart(t *testing.T) {
	withDepletionChance(t, 1.0)
	cfg := config.Cfg()
	s := NewGridSquare(rand.New(rand.NewSource(7)))
	s.MaxFood = 500
	s.RegenRate = 1.0
	s.FoodAmount = 250

	s.RegenerateFood(0.5, 26)

	if !s.Depleting() {
		t.Fatal("expected a depletion event to start at chance 1.0")
	}
	if s.DepletionDuration < cfg.Cell.DepletionMinDuration || s.DepletionDuration > cfg.Cell.DepletionMaxDuration {
		t.Errorf("depletion duration %f outside [%f, %f]",
			s.DepletionDuration, cfg.Cell.DepletionMinDuration, cfg.Cell.DepletionMaxDuration)
	}
}

func TestRegenerateFood_DepletionDrains(t *testing.T) {
	withDepletionChance(t, 0)
	cfg := config.Cfg()
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 500
	s.RegenRate = 1.0
	s.FoodAmount = 10
	s.DepletionTimer = 5
	s.DepletionDuration = 5

	// Drain rate = regen * seasonal * drain factor. At t=26 that is
	// 1.0 * 1.6 * 0.7 = 1.12 per time unit.
	s.RegenerateFood(1, 26)

	want := 10.0 - 1.0*1.6*cfg.Cell.DepletionDrainFactor
	if math.Abs(s.FoodAmount-want) > 1e-9 {
		t.Errorf("expected drain to %f, got %f", want, s.FoodAmount)
	}
	if math.Abs(s.DepletionTimer-4.0) > 1e-9 {
		t.Errorf("expected timer 4.0, got %f", s.DepletionTimer)
	}
}

func TestRegenerateFood_DepletionFloorsAtZero(t *testing.T) {
	withDepletionChance(t, 0)
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 500
	s.RegenRate = 2.0
	s.FoodAmount = 0.1
	s.DepletionTimer = 8
	s.DepletionDuration = 8

	s.RegenerateFood(5, 26)

	if s.FoodAmount != 0 {
		t.Errorf("expected food floored at 0 during depletion, got %f", s.FoodAmount)
	}
}

func TestRegenerateFood_DepletionExpires(t *testing.T) {
	withDepletionChance(t, 0)
	s := NewGridSquare(rand.New(rand.NewSource(1)))
	s.MaxFood = 500
	s.RegenRate = 1.0
	s.FoodAmount = 100
	s.DepletionTimer = 1
	s.DepletionDuration = 6

	s.RegenerateFood(1, 26)
	if s.Depleting() {
		t.Fatal("expected depletion to expire after its duration")
	}

	// Next tick regrows normally.
	before := s.FoodAmount
	s.RegenerateFood(1, 26)
	if s.FoodAmount <= before {
		t.Errorf("expected growth after depletion expired: %f -> %f", before, s.FoodAmount)
	}
}

// ---------- Consumption ----------

func TestConsumeFood(t *testing.T) {
	tests := []struct {
		name         string
		available    float64
		requested    float64
		wantConsumed float64
		wantLeft     float64
	}{
		{"partial", 100, 30, 30, 70},
		{"exact", 50, 50, 50, 0},
		{"over-request", 10, 25, 10, 0},
		{"empty", 0, 5, 0, 0},
		{"negative request", 40, -5, 0, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &GridSquare{FoodAmount: tt.available}
			got := s.ConsumeFood(tt.requested)
			if math.Abs(got-tt.wantConsumed) > 1e-9 {
				t.Errorf("consumed %f, want %f", got, tt.wantConsumed)
			}
			if math.Abs(s.FoodAmount-tt.wantLeft) > 1e-9 {
				t.Errorf("left %f, want %f", s.FoodAmount, tt.wantLeft)
			}
		})
	}
}

func TestHasFood_Threshold(t *testing.T) {
	threshold := config.Cfg().Cell.HasFoodThreshold

	s := &GridSquare{FoodAmount: threshold / 2}
	if s.HasFood() {
		t.Errorf("expected no usable food at %f (threshold %f)", s.FoodAmount, threshold)
	}

	s.FoodAmount = threshold + 0.5
	if !s.HasFood() {
		t.Errorf("expected usable food at %f (threshold %f)", s.FoodAmount, threshold)
	}
}
