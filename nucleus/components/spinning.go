// Package components holds leaf components and systems built on the nucleus
// core: spinning and transform behaviors, a gizmo that owns auxiliary nodes
// and the SpinControl system.
package components

import (
	"github.com/chewxy/math32"
	"github.com/plus3/nucleus/nucleus"
)

// Spinning rotates its node around the Y axis every frame.
//
// Props:
//   - clockwise (bool, default true)
//   - speed (number, radians per frame, default 0.005)
type Spinning struct {
	nucleus.ComponentBase
}

// NewSpinning returns a Spinning component. Nil props select the defaults.
func NewSpinning(props nucleus.Props) *Spinning {
	s := &Spinning{}
	nucleus.InitComponent(s, nucleus.Props{"clockwise": true, "speed": 0.005}.Merge(props))
	return s
}

// Step returns the rotation applied on the next frame, taking the SpinControl
// system into account when one is registered.
func (s *Spinning) Step() float32 {
	props := s.Props()
	step := math32.Abs(Float(props, "speed", 0.005))
	if !nucleus.Get(props, "clockwise", true) {
		step = -step
	}

	if sys, err := s.System(); err == nil && sys != nil {
		if control, ok := sys.(*SpinControl); ok {
			if control.Paused() {
				return 0
			}
			step *= control.Multiplier()
		}
	}
	return step
}

func (s *Spinning) OnBeforeRender(dt float64) {
	node, ok := transformable(s.AsComponent())
	if !ok {
		return
	}
	step := s.Step()
	if step == 0 {
		return
	}
	r := node.Rotation()
	r.Y += step
	node.SetRotation(r)
}
