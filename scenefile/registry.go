package scenefile

import (
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/nucleus/components"
)

// ComponentFactory creates a component from its scene props.
type ComponentFactory func(props nucleus.Props) (nucleus.Component, error)

// SystemFactory creates a system from its scene props.
type SystemFactory func(props nucleus.Props) (nucleus.System, error)

// Registry maps the type names used in scene files to factories.
type Registry struct {
	components map[string]ComponentFactory
	systems    map[string]SystemFactory
}

func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]ComponentFactory),
		systems:    make(map[string]SystemFactory),
	}
}

// DefaultRegistry returns a registry holding the built-in components and
// systems.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.RegisterComponent("spinning", func(p nucleus.Props) (nucleus.Component, error) {
		return components.NewSpinning(p), nil
	})
	reg.RegisterComponent("transform", func(nucleus.Props) (nucleus.Component, error) {
		return components.NewTransform(), nil
	})
	reg.RegisterComponent("gizmo", func(p nucleus.Props) (nucleus.Component, error) {
		return components.NewGizmo(p), nil
	})
	reg.RegisterSystem("spin-control", func(p nucleus.Props) (nucleus.System, error) {
		return components.NewSpinControl(p), nil
	})
	return reg
}

// RegisterComponent adds or replaces a component factory.
func (r *Registry) RegisterComponent(name string, f ComponentFactory) {
	r.components[name] = f
}

// RegisterSystem adds or replaces a system factory.
func (r *Registry) RegisterSystem(name string, f SystemFactory) {
	r.systems[name] = f
}
