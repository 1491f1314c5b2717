// Package viewer renders the simulation with raylib and drives wall-clock
// updates. It consumes only the world's read-only snapshots; no simulation
// logic lives here.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/gridlife/config"
	"github.com/pthm-cable/gridlife/world"
)

const panelWidth = 320

// Viewer holds presentation state: selection, pause, and speed. The world
// factory supports the reset button.
type Viewer struct {
	w        *world.World
	newWorld func() (*world.World, error)
	cfg      *config.Config

	squareSize int32
	originX    int32
	originY    int32

	paused      bool
	speed       float32
	hasSelected bool
	selX, selY  int
}

// New creates a viewer around an existing world.
func New(w *world.World, cfg *config.Config, newWorld func() (*world.World, error)) *Viewer {
	return &Viewer{
		w:        w,
		newWorld: newWorld,
		cfg:      cfg,
		speed:    1.0,
	}
}

// Run opens the window and loops until closed.
func (v *Viewer) Run() {
	cfg := v.cfg
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Grid Life")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
}

func (v *Viewer) update() {
	v.layout()
	v.handleInput()

	if v.paused {
		return
	}
	dt := float64(rl.GetFrameTime()) * float64(v.speed)
	if dt > 0 {
		v.w.Step(dt)
	}
}

// layout recomputes the grid placement from the current window size.
func (v *Viewer) layout() {
	gridW := int32(v.cfg.Grid.Width)
	gridH := int32(v.cfg.Grid.Height)

	availW := int32(rl.GetScreenWidth()) - panelWidth - 20
	availH := int32(rl.GetScreenHeight()) - 20

	size := availW / gridW
	if s := availH / gridH; s < size {
		size = s
	}
	if size < 4 {
		size = 4
	}
	if size > 56 {
		size = 56
	}
	v.squareSize = size
	v.originX = (availW - gridW*size) / 2
	if v.originX < 10 {
		v.originX = 10
	}
	v.originY = (availH - gridH*size) / 2
	if v.originY < 10 {
		v.originY = 10
	}
}

func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	gx := (int32(mouse.X) - v.originX) / v.squareSize
	gy := (int32(mouse.Y) - v.originY) / v.squareSize
	if int32(mouse.X) >= v.originX && int32(mouse.Y) >= v.originY &&
		gx >= 0 && int(gx) < v.cfg.Grid.Width && gy >= 0 && int(gy) < v.cfg.Grid.Height {
		v.hasSelected = true
		v.selX, v.selY = int(gx), int(gy)
	}
}

// reset rebuilds the world from the factory.
func (v *Viewer) reset() {
	w, err := v.newWorld()
	if err != nil {
		slog.Error("reset failed", "error", err)
		return
	}
	v.w = w
	v.hasSelected = false
	v.paused = false
}
