package components

import (
	"github.com/plus3/nucleus/nucleus"
	"go.uber.org/zap"
)

// SpinControl is the system for Spinning components. It can pause every
// spinner of the surface or scale their speed.
//
// Props:
//   - paused (bool, default false)
//   - multiplier (number, default 1)
type SpinControl struct {
	nucleus.SystemBase

	members map[*Spinning]struct{}
	frames  int64
}

// NewSpinControl returns an unregistered SpinControl system.
func NewSpinControl(props nucleus.Props) *SpinControl {
	s := &SpinControl{members: make(map[*Spinning]struct{})}
	nucleus.InitSystem(s, nucleus.ComponentTypeFor[*Spinning]())
	s.UpdateProps(props)
	return s
}

func (s *SpinControl) Paused() bool {
	return nucleus.Get(s.Props(), "paused", false)
}

func (s *SpinControl) Multiplier() float32 {
	return Float(s.Props(), "multiplier", 1)
}

// Members returns the number of mounted Spinning components.
func (s *SpinControl) Members() int {
	return len(s.members)
}

// Frames returns the number of frames the system has seen while unpaused.
func (s *SpinControl) Frames() int64 {
	return s.frames
}

func (s *SpinControl) OnComponentDidMount(c nucleus.Component) {
	if sp, ok := c.(*Spinning); ok {
		s.members[sp] = struct{}{}
	}
}

func (s *SpinControl) OnComponentWillUnmount(c nucleus.Component) {
	if sp, ok := c.(*Spinning); ok {
		delete(s.members, sp)
	}
}

func (s *SpinControl) WillPropsUpdate(next nucleus.Props) bool {
	if m, ok := next["multiplier"]; ok {
		if _, isNum := toFloat(m); !isNum {
			return false
		}
	}
	return true
}

func (s *SpinControl) OnPropsUpdated(old nucleus.Props) {
	if ctx, err := s.Context(); err == nil {
		ctx.Logger().Debug("spin control updated",
			zap.Bool("paused", s.Paused()), zap.Float32("multiplier", s.Multiplier()))
	}
}

func (s *SpinControl) OnBeforeRender(dt float64) {
	if !s.Paused() {
		s.frames++
	}
}

func (s *SpinControl) OnDispose() {
	clear(s.members)
}
