package telemetry_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
	"github.com/plus3/asteroids/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStats() *ecs.SchedulerStats {
	return &ecs.SchedulerStats{
		SystemCount:     2,
		TotalExecutions: 20,
		Frames:          10,
		Systems: []ecs.SystemStats{
			{
				Name:           "MoveSystem",
				ExecutionCount: 10,
				MinDuration:    2 * time.Microsecond,
				AvgDuration:    5 * time.Microsecond,
				MaxDuration:    9 * time.Microsecond,
				LastDuration:   4 * time.Microsecond,
				TotalDuration:  50 * time.Microsecond,
			},
			{
				Name:           "CollisionSystem",
				ExecutionCount: 10,
				AvgDuration:    40 * time.Microsecond,
				TotalDuration:  400 * time.Microsecond,
			},
		},
	}
}

func TestSystemRecords(t *testing.T) {
	records := telemetry.SystemRecords("simulation", sampleStats())

	require.Len(t, records, 2)
	assert.Equal(t, telemetry.SystemRecord{
		Frame:      10,
		Scheduler:  "simulation",
		System:     "MoveSystem",
		Executions: 10,
		MinUs:      2,
		AvgUs:      5,
		MaxUs:      9,
		LastUs:     4,
		TotalMs:    0.05,
	}, records[0])
}

func TestWriteSystemStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, telemetry.WriteSystemStats(&buf, "simulation", sampleStats()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "frame,scheduler,system,executions,min_us,avg_us,max_us,last_us,total_ms", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "10,simulation,MoveSystem,10,"))

	var back []telemetry.SystemRecord
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &back))
	assert.Equal(t, telemetry.SystemRecords("simulation", sampleStats()), back)
}

func TestStatsWriterWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.csv")
	sw, err := telemetry.CreateStatsFile(path)
	require.NoError(t, err)

	require.NoError(t, sw.Write("simulation", sampleStats()))
	require.NoError(t, sw.Write("render", sampleStats()))
	require.NoError(t, sw.Write("empty", &ecs.SchedulerStats{}))
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "frame,scheduler"))

	var records []telemetry.SystemRecord
	require.NoError(t, gocsv.UnmarshalBytes(data, &records))
	require.Len(t, records, 4)
	assert.Equal(t, "render", records[3].Scheduler)
}

func TestCreateStatsFileInMissingDirectory(t *testing.T) {
	_, err := telemetry.CreateStatsFile(filepath.Join(t.TempDir(), "missing", "stats.csv"))
	assert.ErrorContains(t, err, "creating stats file")
}

func TestStatsFromLiveScheduler(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {}))
	for range 5 {
		scheduler.Once(1.0 / 60)
	}

	var buf bytes.Buffer
	require.NoError(t, telemetry.NewStatsWriter(&buf).Write("simulation", scheduler.GetStats()))

	var records []telemetry.SystemRecord
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, uint64(5), records[0].Frame)
	assert.Equal(t, int64(5), records[0].Executions)
}

func TestLogStats(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	telemetry.LogStats(logger, sampleStats(), &ecs.StorageStats{TotalEntityCount: 7, ArchetypeCount: 3, SingletonCount: 4},
		game.Counters{BulletsFired: 12, AsteroidsDestroyed: 2})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "run summary", entry["msg"])
	assert.Equal(t, float64(10), entry["frames"])
	assert.Equal(t, map[string]any{"alive": float64(7), "archetypes": float64(3), "singletons": float64(4)}, entry["entities"])

	counters := entry["counters"].(map[string]any)
	assert.Equal(t, float64(12), counters["bullets_fired"])
	assert.Equal(t, float64(2), counters["asteroids_destroyed"])

	assert.Equal(t, []any{"CollisionSystem=40µs", "MoveSystem=5µs"}, entry["slowest"])
}
