package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

type archetypeViewer struct {
	target    *ecs.Storage
	selection *ecs.Singleton[Selection]

	sortColumn    int
	sortAscending bool
}

func newArchetypeViewer(target *ecs.Storage, selection *ecs.Singleton[Selection]) *archetypeViewer {
	return &archetypeViewer{
		target:     target,
		selection:  selection,
		sortColumn: 3,
	}
}

// Render lists the non-empty archetypes. Clicking one restricts the entity
// browser to it.
func (av *archetypeViewer) Render() {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	archetypes := av.target.CollectStats().ArchetypeBreakdown
	SortArchetypes(archetypes, av.sortColumn, av.sortAscending)
	selection := av.selection.Get()

	largest := 0
	for _, arch := range archetypes {
		largest = max(largest, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}

	imgui.TableSetupColumn("Archetype ID")
	imgui.TableSetupColumn("Components")
	imgui.TableSetupColumn("Comp Count")
	imgui.TableSetupColumn("Entity Count")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		av.sortColumn = int(spec.ColumnIndex())
		av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		sortSpecs.SetSpecsDirty(false)
	}

	for _, arch := range archetypes {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		selected := selection.Archetype != nil && *selection.Archetype == arch.ID
		if imgui.SelectableBoolV(fmt.Sprintf("0x%X", arch.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			id := arch.ID
			selection.Archetype = &id
		}

		imgui.TableNextColumn()
		imgui.Text(strings.Join(arch.ComponentTypes, ", "))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", len(arch.ComponentTypes)))

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

		if largest > 0 {
			width := float32(arch.EntityCount) / float32(largest) * 80
			imgui.SameLine()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10), color)
		}
	}

	imgui.EndTable()
}
