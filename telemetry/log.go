package telemetry

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
)

// slowestSystems is how many systems the summary lists by average time.
const slowestSystems = 3

// LogStats logs one summary line for a finished run.
func LogStats(logger *slog.Logger, scheduler *ecs.SchedulerStats, storage *ecs.StorageStats, counters game.Counters) {
	logger.LogAttrs(context.Background(), slog.LevelInfo, "run summary",
		slog.Uint64("frames", scheduler.Frames),
		slog.Int64("executions", scheduler.TotalExecutions),
		slog.Group("entities",
			slog.Int("alive", storage.TotalEntityCount),
			slog.Int("archetypes", storage.ArchetypeCount),
			slog.Int("singletons", storage.SingletonCount),
		),
		slog.Any("counters", counters),
		slog.Any("slowest", slowest(scheduler.Systems, slowestSystems)),
	)
}

func slowest(systems []ecs.SystemStats, n int) []string {
	sorted := slices.Clone(systems)
	slices.SortStableFunc(sorted, func(a, b ecs.SystemStats) int {
		return cmp.Compare(b.AvgDuration, a.AvgDuration)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	names := make([]string, len(sorted))
	for i, s := range sorted {
		names[i] = s.Name + "=" + s.AvgDuration.String()
	}
	return names
}
