package viewer

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawPanel renders the right-side controls and the click-to-inspect info.
func (v *Viewer) drawPanel() {
	px := float32(rl.GetScreenWidth() - panelWidth - 10)
	py := float32(10)

	rl.DrawRectangle(int32(px), int32(py), panelWidth, int32(rl.GetScreenHeight())-20, rl.Color{R: 28, G: 28, B: 32, A: 255})
	rl.DrawRectangleLines(int32(px), int32(py), panelWidth, int32(rl.GetScreenHeight())-20, rl.DarkGray)

	x := px + 12
	y := py + 12

	rl.DrawText("Controls", int32(x), int32(y), 18, rl.RayWhite)
	y += 28

	pauseLabel := "Pause"
	if v.paused {
		pauseLabel = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 90, Height: 28}, pauseLabel) {
		v.paused = !v.paused
	}
	if gui.Button(rl.Rectangle{X: x + 100, Y: y, Width: 90, Height: 28}, "Reset") {
		v.reset()
	}
	y += 38

	rl.DrawText("Speed", int32(x), int32(y), 14, rl.Gray)
	y += 18
	v.speed = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: panelWidth - 90, Height: 20},
		"0.1", "10",
		v.speed, 0.1, 10.0,
	)
	rl.DrawText(fmt.Sprintf("%.1fx", v.speed), int32(x+panelWidth-60), int32(y+2), 16, rl.RayWhite)
	y += 36

	v.drawSquareInfo(x, &y)
	v.drawLifeformInfo(x, &y)
}

func (v *Viewer) drawSquareInfo(x float32, y *float32) {
	rl.DrawText("Square", int32(x), int32(*y), 18, rl.RayWhite)
	*y += 24

	if !v.hasSelected {
		rl.DrawText("Click a square to inspect it.", int32(x), int32(*y), 14, rl.Gray)
		*y += 24
		return
	}

	snap, ok := v.w.CellSnapshot(v.selX, v.selY)
	if !ok {
		v.hasSelected = false
		return
	}

	lines := []string{
		fmt.Sprintf("Position: (%d, %d)", snap.X, snap.Y),
		fmt.Sprintf("Food: %.1f / %.1f", snap.FoodAmount, snap.MaxFood),
		fmt.Sprintf("Seasonal Max: %.1f", snap.SeasonalMaxFood),
		fmt.Sprintf("Regen: %.2f/s (seasonal %.2f/s)", snap.RegenRate, snap.SeasonalRegenRate),
	}
	if snap.DepletionRemaining > 0 {
		lines = append(lines, fmt.Sprintf("Depleting: %.1fs left", snap.DepletionRemaining))
	} else {
		lines = append(lines, "Status: Normal")
	}

	for _, line := range lines {
		rl.DrawText(line, int32(x), int32(*y), 14, rl.LightGray)
		*y += 18
	}
	*y += 10
}

func (v *Viewer) drawLifeformInfo(x float32, y *float32) {
	if !v.hasSelected {
		return
	}

	rl.DrawText("Lifeforms", int32(x), int32(*y), 18, rl.RayWhite)
	*y += 24

	agents := v.w.AgentsAt(v.selX, v.selY)
	if len(agents) == 0 {
		rl.DrawText("None here.", int32(x), int32(*y), 14, rl.Gray)
		*y += 20
		return
	}

	for _, a := range agents {
		status := "Alive"
		if !a.Alive {
			status = fmt.Sprintf("Dead %.1fs", a.DeathTimer)
		}
		rl.DrawText(fmt.Sprintf("#%d  %s", a.ID, status), int32(x), int32(*y), 14, rl.RayWhite)
		*y += 18
		rl.DrawText(fmt.Sprintf("  Health %.1f / %.1f", a.Health, a.MaxHealth), int32(x), int32(*y), 14, rl.LightGray)
		*y += 18

		canMove := "No"
		if a.CanMove {
			canMove = "Yes"
		}
		rl.DrawText(fmt.Sprintf("  Threshold %.1f | Can Move: %s", a.MovementThreshold, canMove), int32(x), int32(*y), 14, rl.LightGray)
		*y += 22
	}
}
