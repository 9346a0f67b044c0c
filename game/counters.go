package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/asteroids/config"
)

// Counters tallies entity lifecycle events for the session. It is stored as a
// singleton and read by the end of run report.
type Counters struct {
	BulletsFired       int64
	AsteroidsSpawned   int64
	AsteroidsDestroyed int64
	BulletsHit         int64
	Despawned          int64
}

func (c Counters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("bullets_fired", c.BulletsFired),
		slog.Int64("asteroids_spawned", c.AsteroidsSpawned),
		slog.Int64("asteroids_destroyed", c.AsteroidsDestroyed),
		slog.Int64("bullets_hit", c.BulletsHit),
		slog.Int64("despawned", c.Despawned),
	)
}

// sample returns a uniform value in [r.Min, r.Max).
func sample(rng *rand.Rand, r config.Range) float64 {
	return between(rng, r.Min, r.Max)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
