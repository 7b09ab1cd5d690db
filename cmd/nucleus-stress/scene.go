package main

import (
	"math/rand/v2"

	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/nucleus/components"
	"github.com/plus3/nucleus/renderer/headless"
)

// Counters tracks the lifecycle operations performed by the harness.
type Counters struct {
	Created     int64
	Disposed    int64
	Mounted     int64
	Toggled     int64
	PropUpdates int64
}

// Scene drives random lifecycle traffic against one surface.
type Scene struct {
	Manager  *nucleus.Manager
	Surface  *headless.Surface
	Rand     *rand.Rand
	Counters Counters

	live []*nucleus.Entity
}

// Populate registers the built-in systems and creates count entities, a
// quarter of them nested under an earlier entity.
func (s *Scene) Populate(count int) error {
	ctx, err := s.Manager.ContextFor(s.Surface)
	if err != nil {
		return err
	}
	if err := ctx.Registrar().RegisterSystems(components.NewSpinControl(nil)); err != nil {
		return err
	}
	for range count {
		if _, err := s.spawn(); err != nil {
			return err
		}
	}
	return nil
}

// Churn disposes n random entities, creates n new ones and pokes at the
// components and props of a few survivors.
func (s *Scene) Churn(n int) error {
	for range n {
		if len(s.live) == 0 {
			break
		}
		i := s.Rand.IntN(len(s.live))
		s.live[i].Dispose(true)
		s.Counters.Disposed++
		s.prune()
	}

	for range n {
		if _, err := s.spawn(); err != nil {
			return err
		}
	}

	for range n {
		if len(s.live) == 0 {
			break
		}
		e := s.live[s.Rand.IntN(len(s.live))]
		if err := e.UpdateProps(nucleus.Props{"position": nucleus.Vector3{X: s.Rand.Float32() * 10}}); err != nil {
			return err
		}
		s.Counters.PropUpdates++

		for _, c := range e.Components() {
			base := c.AsComponent()
			if base.IsEnabled() {
				base.Disable()
			} else {
				base.Enable()
			}
			s.Counters.Toggled++
		}
	}
	return nil
}

func (s *Scene) spawn() (*nucleus.Entity, error) {
	var mp nucleus.MountingPoint = s.Surface
	if len(s.live) > 0 && s.Rand.IntN(4) == 0 {
		mp = s.live[s.Rand.IntN(len(s.live))]
	}

	e, err := s.Manager.NewEntity(mp, nucleus.Props{"position": nucleus.Vector3{X: s.Rand.Float32() * 10}})
	if err != nil {
		return nil, err
	}
	s.Counters.Created++
	s.live = append(s.live, e)

	for _, c := range s.randomComponents() {
		if err := e.MountComponent(c); err != nil {
			return nil, err
		}
		s.Counters.Mounted++
	}
	return e, nil
}

func (s *Scene) randomComponents() []nucleus.Component {
	out := []nucleus.Component{components.NewTransform()}
	if s.Rand.IntN(2) == 0 {
		out = append(out, components.NewSpinning(nucleus.Props{"speed": s.Rand.Float64() * 0.1}))
	}
	if s.Rand.IntN(8) == 0 {
		out = append(out, components.NewGizmo(nil))
	}
	return out
}

// prune drops disposed entities, including children taken down with a
// disposed parent.
func (s *Scene) prune() {
	live := s.live[:0]
	for _, e := range s.live {
		if !e.IsDisposed() {
			live = append(live, e)
		}
	}
	clear(s.live[len(live):])
	s.live = live
}
