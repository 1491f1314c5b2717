package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// cellColor maps a square's food fraction to a green intensity on a dark
// background, matching the classic food-as-greenness display.
func cellColor(foodRatio float64) rl.Color {
	if foodRatio < 0 {
		foodRatio = 0
	}
	if foodRatio > 1 {
		foodRatio = 1
	}
	return rl.Color{R: 20, G: uint8(50 + 150*foodRatio), B: 20, A: 255}
}

// agentColor interpolates red (empty) to green (full) by health ratio.
func agentColor(healthRatio float64) rl.Color {
	if healthRatio < 0 {
		healthRatio = 0
	}
	if healthRatio > 1 {
		healthRatio = 1
	}
	return rl.Color{
		R: uint8(255 * (1 - healthRatio)),
		G: uint8(255 * healthRatio),
		B: 0,
		A: 255,
	}
}

// deadColor blends the corpse grey toward the cell background as the fade
// timer approaches the removal cutoff.
func deadColor(cell rl.Color, fadeProgress float64) rl.Color {
	if fadeProgress < 0 {
		fadeProgress = 0
	}
	if fadeProgress > 1 {
		fadeProgress = 1
	}
	grey := rl.Color{R: 100, G: 100, B: 100, A: 255}
	return lerpColor(grey, cell, fadeProgress)
}

func lerpColor(from, to rl.Color, t float64) rl.Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-t) + float64(b)*t)
	}
	return rl.Color{R: mix(from.R, to.R), G: mix(from.G, to.G), B: mix(from.B, to.B), A: 255}
}
