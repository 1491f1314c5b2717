package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/gridlife/config"
)

// Grid owns the 2-D collection of squares. Squares never move or get
// destroyed; agents reference them by coordinate only.
type Grid struct {
	W, H  int
	cells []*GridSquare
}

// NewGrid allocates a W×H grid. Each square's private RNG is seeded once
// from the food parent stream, in fixed x-major order so identical seeds
// reproduce identical grids.
func NewGrid(w, h int, foodParent *rand.Rand) *Grid {
	g := &Grid{W: w, H: h, cells: make([]*GridSquare, w*h)}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			g.cells[x*h+y] = NewGridSquare(rand.New(rand.NewSource(foodParent.Int63())))
		}
	}
	return g
}

// At returns the square at (x, y). Callers must stay in bounds.
func (g *Grid) At(x, y int) *GridSquare {
	return g.cells[x*g.H+y]
}

// InBounds reports whether (x, y) is a valid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// GenerateHabitat assigns food capacities and regeneration rates with a
// clumped distribution: uniform base values, then a few rich and poor
// patches whose effect falls off linearly with Manhattan distance from the
// patch center. Patch regen assignments overwrite rather than compound, so
// a square under overlapping patches reflects only the last patch applied.
func (g *Grid) GenerateHabitat(habitatRNG *rand.Rand) {
	cfg := config.Cfg()
	hab := &cfg.Habitat

	// First pass: base values.
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			s := g.At(x, y)
			s.MaxFood = uniform(habitatRNG, hab.MaxFoodMin, hab.MaxFoodMax)
			s.BaseRegenRate = uniform(habitatRNG, hab.RegenRateMin, hab.RegenRateMax)
			s.RegenRate = s.BaseRegenRate
		}
	}

	// Second pass: patches.
	numRich := randRange(habitatRNG, hab.RichPatchesMin, hab.RichPatchesMax)
	numPoor := randRange(habitatRNG, hab.PoorPatchesMin, hab.PoorPatchesMax)

	for i := 0; i < numRich; i++ {
		cx := patchCenter(habitatRNG, g.W, hab.PatchRadius)
		cy := patchCenter(habitatRNG, g.H, hab.PatchRadius)
		g.applyRichPatch(cx, cy, hab)
	}
	for i := 0; i < numPoor; i++ {
		cx := patchCenter(habitatRNG, g.W, hab.PatchRadius)
		cy := patchCenter(habitatRNG, g.H, hab.PatchRadius)
		g.applyPoorPatch(cx, cy, hab)
	}

	// Final pass: initial food as a random fraction of final capacity.
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			s := g.At(x, y)
			s.FoodAmount = uniform(habitatRNG, hab.InitialFoodMin, hab.InitialFoodMax) * s.MaxFood
		}
	}
}

func (g *Grid) applyRichPatch(cx, cy int, hab *config.HabitatConfig) {
	r := hab.PatchRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			nx, ny := cx+dx, cy+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			s := g.At(nx, ny)
			d := float64(absInt(dx) + absInt(dy))

			enhancement := math.Max(0, hab.RichFoodBonus-d*hab.RichFoodFalloff)
			s.MaxFood = math.Min(hab.RichFoodCap, s.MaxFood+enhancement)

			boost := 1.0 + math.Max(0, hab.RichRegenBoost-d*hab.RichRegenFalloff)
			s.RegenRate = s.BaseRegenRate * boost
		}
	}
}

func (g *Grid) applyPoorPatch(cx, cy int, hab *config.HabitatConfig) {
	r := hab.PatchRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			nx, ny := cx+dx, cy+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			s := g.At(nx, ny)
			d := float64(absInt(dx) + absInt(dy))

			reduction := math.Max(0, hab.PoorFoodPenalty-d*hab.PoorFoodFalloff)
			s.MaxFood = math.Max(hab.PoorFoodFloor, s.MaxFood-reduction)

			s.RegenRate = s.BaseRegenRate * (hab.PoorRegenBase + d*hab.PoorRegenFalloff)
		}
	}
}

// patchCenter draws a patch center keeping the footprint inside the grid
// when the grid is large enough; small grids fall back to the full range.
func patchCenter(rng *rand.Rand, n, radius int) int {
	lo, hi := radius, n-1-radius
	if hi < lo {
		lo, hi = 0, n-1
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randRange draws an int uniformly from [lo, hi] inclusive.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
