package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

type entityBrowser struct {
	target    *ecs.Storage
	selection *ecs.Singleton[Selection]

	rows    []EntityRow
	version uint64
	built   bool

	filter        string
	perPage       int
	page          int
	sortColumn    int
	sortAscending bool
}

func newEntityBrowser(target *ecs.Storage, selection *ecs.Singleton[Selection], perPage int) *entityBrowser {
	return &entityBrowser{
		target:        target,
		selection:     selection,
		perPage:       perPage,
		sortColumn:    ColumnID,
		sortAscending: true,
	}
}

func (eb *entityBrowser) refresh() {
	if eb.built && eb.version == eb.target.Version() {
		return
	}
	eb.rows = EntityRows(eb.target)
	SortEntityRows(eb.rows, eb.sortColumn, eb.sortAscending)
	eb.version = eb.target.Version()
	eb.built = true
}

func (eb *entityBrowser) Render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh()
	selection := eb.selection.Get()

	imgui.InputTextWithHint("##search", "Search...", &eb.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filter = ""
		selection.Archetype = nil
	}

	rows := FilterEntityRows(eb.rows, eb.filter, selection.Archetype)
	pages := max(1, (len(rows)+eb.perPage-1)/eb.perPage)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, -30), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntityRows(eb.rows, eb.sortColumn, eb.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.page * eb.perPage
		end := min(start+eb.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.ID.String(), selection.Entity == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				selection.Entity = row.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", row.Archetype))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(row.Components)))
		}

		imgui.EndTable()
	}

	if pages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, pages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < pages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
