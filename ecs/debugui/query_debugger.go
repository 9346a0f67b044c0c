package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

// queryDebugger shows which archetypes a view over a chosen set of
// component types would visit.
type queryDebugger struct {
	target   *ecs.Storage
	selected map[string]bool

	types   []string
	version uint64
}

func newQueryDebugger(target *ecs.Storage) *queryDebugger {
	return &queryDebugger{target: target, selected: make(map[string]bool)}
}

func (qd *queryDebugger) Render() {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if qd.types == nil || qd.version != qd.target.Version() {
		qd.types = ComponentTypes(qd.target)
		qd.version = qd.target.Version()
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()
	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, name := range qd.types {
		checked := qd.selected[name]
		if imgui.Checkbox(name, &checked) {
			if checked {
				qd.selected[name] = true
			} else {
				delete(qd.selected, name)
			}
		}
	}
	imgui.Separator()

	var required []string
	for name := range qd.selected {
		required = append(required, name)
	}
	slices.Sort(required)

	if len(required) == 0 {
		imgui.Text("No component types selected")
		return
	}

	matching := MatchingArchetypes(qd.target, required)
	entities := 0
	for _, arch := range matching {
		entities += arch.EntityCount
	}

	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", entities))

	if !imgui.TreeNodeStr("Archetype Details") {
		return
	}
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("All Components")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		for _, arch := range matching {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", arch.ID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
		}
		imgui.EndTable()
	}
	imgui.TreePop()
}
