package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	Tick       int64   `csv:"tick"`
	SimTime    float64 `csv:"sim_time"`
	TimePeriod float64 `csv:"time_period"`
	Season     string  `csv:"season"`

	// Population at window end
	Population int `csv:"population"`

	// Events during the window
	Births       int `csv:"births"`
	Starvations  int `csv:"starvations"`
	CombatDeaths int `csv:"combat_deaths"`
	Fights       int `csv:"fights"`
	Moves        int `csv:"moves"`
	Depletions   int `csv:"depletions"`

	// Health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Grid state
	TotalFood float64 `csv:"total_food"`
}

// ComputeHealthStats calculates mean, standard deviation, and percentiles
// from health values. Returns all zeros for an empty slice.
func ComputeHealthStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("tick", s.Tick),
		slog.Float64("sim_time", s.SimTime),
		slog.Float64("time_period", s.TimePeriod),
		slog.String("season", s.Season),
		slog.Int("population", s.Population),
		slog.Int("births", s.Births),
		slog.Int("starvations", s.Starvations),
		slog.Int("combat_deaths", s.CombatDeaths),
		slog.Int("fights", s.Fights),
		slog.Int("moves", s.Moves),
		slog.Int("depletions", s.Depletions),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_std", s.HealthStd),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("health_p90", s.HealthP90),
		slog.Float64("total_food", s.TotalFood),
	)
}

// LogStats logs the window stats via the default slog handler.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
