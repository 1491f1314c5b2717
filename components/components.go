// Package components defines the ECS components attached to lifeforms.
package components

// Position is a grid coordinate. The coordinator keeps it in bounds;
// movement re-biases steps inward before they are attempted.
type Position struct {
	X int
	Y int
}

// Vitals tracks health and the death/fade lifecycle.
// DeathTimer is negative while alive, reset to 0 at the moment of death,
// and grows by dt every tick thereafter until the fade cutoff removes
// the corpse from the world.
type Vitals struct {
	Health     float64
	MaxHealth  float64
	Alive      bool
	DeathTimer float64
}

// HealthRatio returns health as a fraction of max health.
func (v *Vitals) HealthRatio() float64 {
	if v.MaxHealth <= 0 {
		return 0
	}
	return v.Health / v.MaxHealth
}

// Kill transitions the lifeform to dead and starts the fade timer.
// Idempotent: a second call does not reset the timer.
func (v *Vitals) Kill() {
	if !v.Alive {
		return
	}
	v.Alive = false
	v.DeathTimer = 0
}

// Genome holds the heritable traits not folded into Vitals.
// MaxHealth is also heritable but lives in Vitals because it doubles as
// the clamp on live health.
type Genome struct {
	MovementThreshold float64 // health floor below which the lifeform cannot move
	FoodPerSecond     int     // intake rate while feeding
}

// Organism carries identity. IDs increase monotonically and are never reused.
type Organism struct {
	ID uint64
}
