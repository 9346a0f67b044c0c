package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Seed:      42,
		Duration:  2 * time.Second,
		TPS:       60,
		TotalTime: 2 * time.Second,
		Scheduler: &ecs.SchedulerStats{
			Frames: 120,
			Systems: []ecs.SystemStats{
				{Name: "MoveSystem", ExecutionCount: 120, AvgDuration: 3 * time.Microsecond},
			},
		},
		Storage:  &ecs.StorageStats{TotalEntityCount: 9, ArchetypeCount: 3},
		Counters: game.Counters{BulletsFired: 8, AsteroidsDestroyed: 1},
	}
	report.MemStatsStart.HeapAlloc = 100
	report.MemStatsEnd.HeapAlloc = 60

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))
	out := buf.String()

	assert.Contains(t, out, "**Seed:** 42")
	assert.Contains(t, out, "**Frames per Wall Second:** 60.0")
	assert.Contains(t, out, "| MoveSystem | 120 | 3µs |")
	assert.Contains(t, out, "**Bullets Fired:** 8")
	assert.Contains(t, out, "**Alive Entities:** 9 in 3 archetypes")
	assert.Contains(t, out, "delta: -40")
}
