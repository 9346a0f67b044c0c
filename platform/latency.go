package platform

import (
	"slices"
	"time"

	"github.com/plus3/asteroids/ecs"
)

// latencyHistory keeps the last average duration of every system in a ring
// buffer per system, in milliseconds.
type latencyHistory struct {
	size   int
	next   int
	series map[string][]float32
}

func newLatencyHistory(size int) *latencyHistory {
	return &latencyHistory{size: size, series: make(map[string][]float32)}
}

// Record appends one sample per system. prefix keeps systems of different
// schedulers apart.
func (h *latencyHistory) Record(prefix string, stats *ecs.SchedulerStats) {
	for _, s := range stats.Systems {
		name := prefix + s.Name
		samples, ok := h.series[name]
		if !ok {
			samples = make([]float32, h.size)
			h.series[name] = samples
		}
		samples[h.next] = float32(s.LastDuration) / float32(time.Millisecond)
	}
}

// Advance moves the ring buffer to the next frame.
func (h *latencyHistory) Advance() {
	h.next = (h.next + 1) % h.size
}

// Names returns the recorded system names in sorted order.
func (h *latencyHistory) Names() []string {
	names := make([]string, 0, len(h.series))
	for name := range h.series {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Series returns the samples for name, oldest first.
func (h *latencyHistory) Series(name string) []float32 {
	samples := h.series[name]
	if samples == nil {
		return nil
	}
	out := make([]float32, h.size)
	n := copy(out, samples[h.next:])
	copy(out[n:], samples[:h.next])
	return out
}

// Max returns the largest sample across every series.
func (h *latencyHistory) Max() float32 {
	var m float32
	for _, samples := range h.series {
		for _, v := range samples {
			m = max(m, v)
		}
	}
	return m
}
