package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/gridlife/config"
	"github.com/pthm-cable/gridlife/telemetry"
	"github.com/pthm-cable/gridlife/viewer"
	"github.com/pthm-cable/gridlife/world"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited; headless only)")
	tickDT := flag.Float64("dt", 0.5, "Time units per tick in headless mode")
	speed := flag.Float64("speed", 1.0, "Speed multiplier applied to dt")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	newWorld := func() (*world.World, error) {
		return world.New(cfg)
	}

	w, err := newWorld()
	if err != nil {
		if errors.Is(err, config.ErrInvalidConfig) {
			slog.Error("rejected configuration", "error", err)
		} else {
			slog.Error("failed to create world", "error", err)
		}
		os.Exit(1)
	}

	if *headless {
		runHeadless(w, cfg, *maxTicks, *tickDT**speed, *outputDir, *logStats)
		return
	}

	viewer.New(w, cfg, newWorld).Run()
}

// runHeadless drives the world with a fixed dt per tick, flushing stats
// windows to slog and CSV. Extinction ends the run.
func runHeadless(w *world.World, cfg *config.Config, maxTicks int, dt float64, outputDir string, logStats bool) {
	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow)
	w.AttachCollector(collector)

	output, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	slog.Info("starting headless simulation", "dt", dt, "max_ticks", maxTicks)

	for tick := 0; maxTicks == 0 || tick < maxTicks; tick++ {
		w.Step(dt)

		if collector.ShouldFlush() {
			stats := w.AggregateStats()
			window := collector.Flush(
				w.Tick(),
				stats.AliveCount,
				w.AliveHealths(),
				w.TotalFood(),
				stats.TimePeriod,
				stats.Season,
			)
			if logStats {
				window.LogStats()
			}
			if err := output.WriteStats(window); err != nil {
				slog.Error("failed to write stats", "error", err)
			}
		}

		if w.AggregateStats().AliveCount == 0 {
			slog.Info("population extinct", "tick", w.Tick(), "time_period", w.TimePeriod())
			return
		}
	}
	slog.Info("max ticks reached", "tick", w.Tick())
}
