// Package debugui provides a Dear ImGui scene inspector for nucleus surfaces.
// Every window is a component that draws itself from OnBeforeRender, so the
// surface frame must run between the backend's BeginFrame and EndFrame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nucleus/nucleus"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Mount it to any entity that should render ImGui widgets each frame.
type ImguiItem struct {
	nucleus.ComponentBase
	Render func()
}

func NewImguiItem(render func()) *ImguiItem {
	item := &ImguiItem{Render: render}
	nucleus.InitComponent(item, nil)
	return item
}

func (i *ImguiItem) OnBeforeRender(dt float64) {
	if i.Render != nil {
		i.Render()
	}
}

// InputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem is the system for ImguiItem. It refreshes the input capture
// state once per frame.
type ImguiSystem struct {
	nucleus.SystemBase
	Input InputState
	items int
}

func NewImguiSystem() *ImguiSystem {
	s := &ImguiSystem{}
	nucleus.InitSystem(s, nucleus.ComponentTypeFor[*ImguiItem]())
	return s
}

// Items returns the number of mounted ImguiItem components.
func (s *ImguiSystem) Items() int {
	return s.items
}

func (s *ImguiSystem) OnComponentDidMount(nucleus.Component)    { s.items++ }
func (s *ImguiSystem) OnComponentWillUnmount(nucleus.Component) { s.items-- }

func (s *ImguiSystem) OnBeforeRender(dt float64) {
	s.Input.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	s.Input.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()
}
