package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
)

// Report summarises a headless run.
type Report struct {
	// Configuration
	Seed     uint64
	Duration time.Duration
	TPS      int

	// Results
	TotalTime     time.Duration
	Scheduler     *ecs.SchedulerStats
	Storage       *ecs.StorageStats
	Counters      game.Counters
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

const reportTemplate = `
# Asteroids Run Report

## Configuration
- **Seed:** {{.Seed}}
- **Simulated Duration:** {{.Duration}}
- **Target TPS:** {{.TPS}}

## Simulation
- **Frames:** {{.Scheduler.Frames}}
- **Total Run Time:** {{.TotalTime}}
- **Frames per Wall Second:** {{tps .Scheduler.Frames .TotalTime | printf "%.1f"}}
- **Alive Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes

## Systems
| System | Runs | Avg | Min | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} |
{{- end}}

## Gameplay
- **Bullets Fired:** {{.Counters.BulletsFired}}
- **Bullets Hit:** {{.Counters.BulletsHit}}
- **Asteroids Spawned:** {{.Counters.AsteroidsSpawned}}
- **Asteroids Destroyed:** {{.Counters.AsteroidsDestroyed}}
- **Despawned Off Screen:** {{.Counters.Despawned}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- Total GC Pause: {{.MemStatsEnd.PauseTotalNs | ns}}
`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
	"tps": func(frames uint64, elapsed time.Duration) float64 {
		if elapsed <= 0 {
			return 0
		}
		return float64(frames) / elapsed.Seconds()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
