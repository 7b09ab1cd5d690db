package components

import "github.com/plus3/nucleus/nucleus"

// Transform copies the position, rotation and scaling props of its entity
// onto the entity node. Rotation is given in degrees.
type Transform struct {
	nucleus.ComponentBase
}

func NewTransform() *Transform {
	t := &Transform{}
	nucleus.InitComponent(t, nil)
	return t
}

func (t *Transform) DidMount() {
	e, err := t.Entity()
	if err != nil {
		return
	}
	t.apply(nil, e.Props())
}

func (t *Transform) OnEntityPropsWillUpdate(old, next nucleus.Props) {
	t.apply(old, next)
}

func (t *Transform) apply(old, next nucleus.Props) {
	node, ok := transformable(t.AsComponent())
	if !ok {
		return
	}

	if v, ok := changed(old, next, "rotation"); ok {
		node.SetRotation(radians(v))
	}
	if v, ok := changed(old, next, "position"); ok {
		node.SetPosition(v)
	}
	if v, ok := changed(old, next, "scaling"); ok {
		node.SetScaling(v)
	}
}

// changed returns the vector under key in next when it differs from old.
func changed(old, next nucleus.Props, key string) (nucleus.Vector3, bool) {
	v, ok := Vector(next, key)
	if !ok {
		return v, false
	}
	if prev, had := Vector(old, key); had && prev == v {
		return v, false
	}
	return v, true
}
