package viewer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sub-cell anchor points for up to four lifeforms per square.
var subPositions = [4][2]float32{
	{0.25, 0.25},
	{0.75, 0.25},
	{0.25, 0.75},
	{0.75, 0.75},
}

func (v *Viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.drawGrid()
	v.drawAgents()
	v.drawStatsLine()
	v.drawPanel()

	rl.EndDrawing()
}

func (v *Viewer) drawGrid() {
	size := v.squareSize
	for x := 0; x < v.cfg.Grid.Width; x++ {
		for y := 0; y < v.cfg.Grid.Height; y++ {
			snap, ok := v.w.CellSnapshot(x, y)
			if !ok {
				continue
			}
			px := v.originX + int32(x)*size
			py := v.originY + int32(y)*size

			ratio := 0.0
			if snap.MaxFood > 0 {
				ratio = snap.FoodAmount / snap.MaxFood
			}
			rl.DrawRectangle(px, py, size, size, cellColor(ratio))

			outline := rl.Gray
			if v.hasSelected && v.selX == x && v.selY == y {
				outline = rl.Yellow
			}
			rl.DrawRectangleLines(px, py, size, size, outline)
		}
	}
}

func (v *Viewer) drawAgents() {
	size := v.squareSize
	radius := float32(size) * 0.15

	for x := 0; x < v.cfg.Grid.Width; x++ {
		for y := 0; y < v.cfg.Grid.Height; y++ {
			agents := v.w.AgentsAt(x, y)
			if len(agents) == 0 {
				continue
			}
			snap, _ := v.w.CellSnapshot(x, y)
			bgRatio := 0.0
			if snap.MaxFood > 0 {
				bgRatio = snap.FoodAmount / snap.MaxFood
			}
			bg := cellColor(bgRatio)

			for i, a := range agents {
				if i >= len(subPositions) {
					break
				}
				px := v.originX + int32(x)*size
				py := v.originY + int32(y)*size
				cx := px + int32(float32(size)*subPositions[i][0])
				cy := py + int32(float32(size)*subPositions[i][1])

				var col rl.Color
				if a.Alive {
					col = agentColor(a.Health / a.MaxHealth)
				} else {
					col = deadColor(bg, a.DeathTimer/v.cfg.Lifeform.FadeTime)
				}
				rl.DrawCircle(cx, cy, radius, col)
				rl.DrawCircleLines(cx, cy, radius, rl.Black)
			}
		}
	}
}

func (v *Viewer) drawStatsLine() {
	stats := v.w.AggregateStats()

	var text string
	if stats.AliveCount > 0 {
		text = fmt.Sprintf("Population: %d | Avg Health: %.1f | Season: %s (%.1f)",
			stats.AliveCount, stats.AverageHealth, stats.Season, stats.TimePeriod)
	} else {
		text = fmt.Sprintf("Population: 0 | All lifeforms extinct! | Season: %s (%.1f)",
			stats.Season, stats.TimePeriod)
	}
	if v.paused {
		text += " | PAUSED"
	}

	rl.DrawText(text, 10, int32(rl.GetScreenHeight())-22, 16, rl.RayWhite)
}
