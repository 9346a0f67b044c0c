// Package telemetry exports scheduler timings as CSV and logs run summaries.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/plus3/asteroids/ecs"
)

// SystemRecord is one system's timings at a given frame.
type SystemRecord struct {
	Frame      uint64  `csv:"frame"`
	Scheduler  string  `csv:"scheduler"`
	System     string  `csv:"system"`
	Executions int64   `csv:"executions"`
	MinUs      float64 `csv:"min_us"`
	AvgUs      float64 `csv:"avg_us"`
	MaxUs      float64 `csv:"max_us"`
	LastUs     float64 `csv:"last_us"`
	TotalMs    float64 `csv:"total_ms"`
}

// SystemRecords flattens scheduler stats into one record per system.
func SystemRecords(scheduler string, stats *ecs.SchedulerStats) []SystemRecord {
	records := make([]SystemRecord, 0, len(stats.Systems))
	for _, s := range stats.Systems {
		records = append(records, SystemRecord{
			Frame:      stats.Frames,
			Scheduler:  scheduler,
			System:     s.Name,
			Executions: s.ExecutionCount,
			MinUs:      micros(s.MinDuration),
			AvgUs:      micros(s.AvgDuration),
			MaxUs:      micros(s.MaxDuration),
			LastUs:     micros(s.LastDuration),
			TotalMs:    float64(s.TotalDuration) / float64(time.Millisecond),
		})
	}
	return records
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// WriteSystemStats writes a single CSV table of system timings with a header.
func WriteSystemStats(w io.Writer, scheduler string, stats *ecs.SchedulerStats) error {
	if err := gocsv.Marshal(SystemRecords(scheduler, stats), w); err != nil {
		return fmt.Errorf("writing system stats: %w", err)
	}
	return nil
}

// StatsWriter appends system timing snapshots to a CSV stream, writing the
// header once.
type StatsWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

func NewStatsWriter(w io.Writer) *StatsWriter {
	return &StatsWriter{w: w}
}

// CreateStatsFile creates or truncates path and returns a writer for it.
func CreateStatsFile(path string) (*StatsWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating stats file: %w", err)
	}
	return &StatsWriter{w: f, closer: f}, nil
}

// Write appends one snapshot. Schedulers with no systems write nothing.
func (sw *StatsWriter) Write(scheduler string, stats *ecs.SchedulerStats) error {
	records := SystemRecords(scheduler, stats)
	if len(records) == 0 {
		return nil
	}

	if !sw.headerWritten {
		if err := gocsv.Marshal(records, sw.w); err != nil {
			return fmt.Errorf("writing system stats: %w", err)
		}
		sw.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, sw.w); err != nil {
		return fmt.Errorf("writing system stats: %w", err)
	}
	return nil
}

func (sw *StatsWriter) Close() error {
	if sw.closer == nil {
		return nil
	}
	return sw.closer.Close()
}
