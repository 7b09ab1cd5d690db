package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nucleus/nucleus"
)

// ComponentInspector shows the props and components of the entity selected
// in an EntityBrowser. Scalar props can be edited in place; edits go through
// UpdateProps so every lifecycle hook runs.
type ComponentInspector struct {
	nucleus.ComponentBase
	browser *EntityBrowser
}

func NewComponentInspector(browser *EntityBrowser) *ComponentInspector {
	ci := &ComponentInspector{browser: browser}
	nucleus.InitComponent(ci, nil)
	return ci
}

func (ci *ComponentInspector) OnBeforeRender(dt float64) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e := ci.browser.Selected()
	if e == nil {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", e.Key()))
	if parent := e.Parent(); parent != nil {
		imgui.Text(fmt.Sprintf("Parent: %s", parent.Key()))
	}
	imgui.Separator()

	if imgui.TreeNodeStr("Props") {
		renderProps("entity", e.Props(), func(next nucleus.Props) { _ = e.UpdateProps(next) })
		imgui.TreePop()
	}

	for _, c := range e.Components() {
		if imgui.TreeNodeStr(nucleus.TypeOf(c).String()) {
			ci.renderComponent(c)
			imgui.TreePop()
		}
	}

	if imgui.Button("Dispose Entity") {
		e.Dispose(true)
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(c nucleus.Component) {
	base := c.AsComponent()

	enabled := base.IsEnabled()
	if imgui.Checkbox("Enabled", &enabled) {
		if enabled {
			base.Enable()
		} else {
			base.Disable()
		}
	}

	if sys, _ := base.System(); sys != nil {
		imgui.Text(fmt.Sprintf("System: %T", sys))
	}
	if nodes := base.Nodes(); len(nodes) > 0 {
		imgui.Text(fmt.Sprintf("Owned nodes: %d", len(nodes)))
	}

	renderProps(nucleus.TypeOf(c).String(), base.Props(), base.UpdateProps)

	val := reflect.ValueOf(c)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && fieldVal.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", field.Name))
			continue
		}
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, fieldVal.Interface()))
	}
}

// renderProps draws one editor row per prop. Numbers, bools and strings are
// editable; other values are shown read-only.
func renderProps(scope string, props nucleus.Props, update func(nucleus.Props)) {
	for _, row := range SortedProps(props) {
		id := fmt.Sprintf("##%s.%s", scope, row.Key)
		switch v := row.Value.(type) {
		case int:
			n := int32(v)
			imgui.Text(fmt.Sprintf("%s:", row.Key))
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputInt(id, &n) {
				update(nucleus.Props{row.Key: int(n)})
			}

		case float64:
			f := float32(v)
			imgui.Text(fmt.Sprintf("%s:", row.Key))
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat(id, &f) {
				update(nucleus.Props{row.Key: float64(f)})
			}

		case float32:
			f := v
			imgui.Text(fmt.Sprintf("%s:", row.Key))
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat(id, &f) {
				update(nucleus.Props{row.Key: f})
			}

		case bool:
			b := v
			if imgui.Checkbox(row.Key+id, &b) {
				update(nucleus.Props{row.Key: b})
			}

		case string:
			s := v
			imgui.Text(fmt.Sprintf("%s:", row.Key))
			imgui.SameLine()
			imgui.SetNextItemWidth(200)
			if imgui.InputTextWithHint(id, "", &s, imgui.InputTextFlagsNone, nil) {
				update(nucleus.Props{row.Key: s})
			}

		default:
			imgui.Text(fmt.Sprintf("%s: %s", row.Key, formatValue(v)))
		}
	}
}
