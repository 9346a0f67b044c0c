package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

// storageStats plots the target's entity count over recent frames.
type storageStats struct {
	target  *ecs.Storage
	history []float32
	next    int
}

func newStorageStats(target *ecs.Storage, frames int) *storageStats {
	return &storageStats{target: target, history: make([]float32, frames)}
}

func (ss *storageStats) Render() {
	stats := ss.target.CollectStats()
	ss.history[ss.next] = float32(stats.TotalEntityCount)
	ss.next = (ss.next + 1) % len(ss.history)

	if !imgui.BeginV("Storage Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Version: %d", ss.target.Version()))

	imgui.Separator()
	imgui.Text("Entity Count")
	imgui.PlotLinesFloatPtr("##entities", &ss.history[0], int32(len(ss.history)))

	if imgui.TreeNodeStr("Singleton Details") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}
}
