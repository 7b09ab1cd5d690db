package scenefile

import (
	"fmt"

	"github.com/plus3/nucleus/nucleus"
)

// Result holds what Build created.
type Result struct {
	Roots    []*nucleus.Entity
	Entities []*nucleus.Entity
	Systems  []nucleus.System
}

// Dispose disposes every root entity and unregisters the systems.
func (r *Result) Dispose() {
	for _, e := range r.Roots {
		e.Dispose(true)
	}
	for _, s := range r.Systems {
		if ctx, err := s.AsSystem().Context(); err == nil {
			_ = ctx.Registrar().UnregisterSystem(s)
		}
	}
}

// Build registers the scene systems and creates the entity tree under mp.
// On error everything built so far is torn down again.
func (s *Scene) Build(manager *nucleus.Manager, mp nucleus.MountingPoint, reg *Registry) (*Result, error) {
	if err := s.Validate(reg); err != nil {
		return nil, err
	}
	ctx, err := manager.ContextFor(mp)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, spec := range s.Systems {
		sys, err := reg.systems[spec.Type](nucleus.Props(spec.Props))
		if err != nil {
			res.Dispose()
			return nil, fmt.Errorf("scenefile: system %q: %w", spec.Type, err)
		}
		if err := ctx.Registrar().RegisterSystem(sys); err != nil {
			res.Dispose()
			return nil, fmt.Errorf("scenefile: system %q: %w", spec.Type, err)
		}
		res.Systems = append(res.Systems, sys)
	}

	for _, spec := range s.Entities {
		roots, err := buildEntity(manager, mp, spec, reg, res)
		res.Roots = append(res.Roots, roots...)
		if err != nil {
			res.Dispose()
			return nil, err
		}
	}
	return res, nil
}

func buildEntity(manager *nucleus.Manager, mp nucleus.MountingPoint, spec EntitySpec, reg *Registry, res *Result) ([]*nucleus.Entity, error) {
	repeat := max(spec.Repeat, 1)
	out := make([]*nucleus.Entity, 0, repeat)

	for i := range repeat {
		var opts []nucleus.EntityOption
		if spec.Key != "" {
			key := spec.Key
			if spec.Repeat > 1 {
				key = fmt.Sprintf("%s-%d", spec.Key, i)
			}
			opts = append(opts, nucleus.WithKey(key))
		}

		e, err := manager.NewEntity(mp, nucleus.Props(spec.Props), opts...)
		if err != nil {
			return out, fmt.Errorf("scenefile: entity %q: %w", spec.Key, err)
		}
		out = append(out, e)
		res.Entities = append(res.Entities, e)

		for _, cs := range spec.Components {
			c, err := reg.components[cs.Type](nucleus.Props(cs.Props))
			if err != nil {
				return out, fmt.Errorf("scenefile: component %q: %w", cs.Type, err)
			}
			if cs.Disabled {
				c.AsComponent().Disable()
			}
			if err := e.MountComponent(c); err != nil {
				return out, fmt.Errorf("scenefile: component %q on %q: %w", cs.Type, e.Key(), err)
			}
		}

		for _, child := range spec.Children {
			if _, err := buildEntity(manager, e, child, reg, res); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}
