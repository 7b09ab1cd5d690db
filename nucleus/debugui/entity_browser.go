package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nucleus/nucleus"
)

// EntityBrowser lists the entity tree of its surface and tracks a selection.
type EntityBrowser struct {
	nucleus.ComponentBase

	rows       []EntityInfo
	selected   *nucleus.Entity
	filterText string
	maxRows    int
	page       int
}

func NewEntityBrowser(maxRows int) *EntityBrowser {
	eb := &EntityBrowser{maxRows: maxRows}
	nucleus.InitComponent(eb, nil)
	return eb
}

// Selected returns the selected entity, or nil when nothing live is selected.
func (eb *EntityBrowser) Selected() *nucleus.Entity {
	if eb.selected != nil && eb.selected.IsDisposed() {
		eb.selected = nil
	}
	return eb.selected
}

// Select changes the selection.
func (eb *EntityBrowser) Select(e *nucleus.Entity) {
	eb.selected = e
}

func (eb *EntityBrowser) WillUnmount() {
	eb.rows = nil
	eb.selected = nil
}

func (eb *EntityBrowser) OnBeforeRender(dt float64) {
	ctx, err := eb.Context()
	if err != nil {
		return
	}
	eb.rows = CollectEntities(ctx)
	eb.render()
}

func (eb *EntityBrowser) render() {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	rows := FilterEntities(eb.rows, eb.filterText)
	start := eb.page * eb.maxRows
	if start >= len(rows) {
		eb.page, start = 0, 0
	}
	end := min(start+eb.maxRows, len(rows))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Key")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Children")
		imgui.TableHeadersRow()

		for _, row := range rows[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := strings.Repeat("  ", row.Depth) + row.Key
			if imgui.SelectableBoolV(label, eb.selected == row.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ChildCount))
		}

		imgui.EndTable()
	}

	if len(rows) > eb.maxRows {
		totalPages := (len(rows) + eb.maxRows - 1) / eb.maxRows
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.page+1, totalPages, len(rows)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.page > 0 {
			eb.page--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.page < totalPages-1 {
			eb.page++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(rows)))
	}

	imgui.End()
}
