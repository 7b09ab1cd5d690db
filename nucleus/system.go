package nucleus

// System gives shared state and behavior to every component of one type.
// Implementations embed SystemBase and call InitSystem before registering.
type System interface {
	AsSystem() *SystemBase

	// OnInit runs when the system is registered.
	OnInit()
	// OnDispose runs when the system is unregistered or its surface goes away.
	OnDispose()
	// OnBeforeRender runs once per frame while registered.
	OnBeforeRender(dt float64)
	// OnComponentDidMount runs when a component of the system type mounts.
	OnComponentDidMount(c Component)
	// OnComponentWillUnmount runs before a component of the system type unmounts.
	OnComponentWillUnmount(c Component)
	// WillPropsUpdate may veto an update of the system props.
	WillPropsUpdate(next Props) bool
	// OnPropsUpdated runs after the system props were updated.
	OnPropsUpdated(old Props)
}

// SystemBase holds the registration state of a system.
type SystemBase struct {
	this          System
	componentType ComponentType
	props         Props
	initialized   bool
	ctx           *Context
}

// InitSystem permanently binds s to the component type t.
func InitSystem(s System, t ComponentType) {
	b := s.AsSystem()
	b.this = s
	b.componentType = t
	if b.props == nil {
		b.props = Props{}
	}
}

// AsSystem implements System.
func (b *SystemBase) AsSystem() *SystemBase { return b }

func (b *SystemBase) OnInit()                            {}
func (b *SystemBase) OnDispose()                         {}
func (b *SystemBase) OnBeforeRender(dt float64)          {}
func (b *SystemBase) OnComponentDidMount(c Component)    {}
func (b *SystemBase) OnComponentWillUnmount(c Component) {}
func (b *SystemBase) WillPropsUpdate(next Props) bool    { return true }
func (b *SystemBase) OnPropsUpdated(old Props)           {}

// ComponentType returns the component type the system serves.
func (b *SystemBase) ComponentType() ComponentType {
	return b.componentType
}

// Props returns the system props. The map must not be modified.
func (b *SystemBase) Props() Props {
	return b.props
}

// IsInitialized reports whether the system is registered on a surface.
func (b *SystemBase) IsInitialized() bool {
	return b.initialized
}

// Context returns the context the system was registered on.
func (b *SystemBase) Context() (*Context, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return b.ctx, nil
}

// UpdateProps merges props over the system props. Once initialized,
// WillPropsUpdate may veto the change and OnPropsUpdated runs after it.
func (b *SystemBase) UpdateProps(props Props) {
	next := props.Clone()
	if !b.initialized {
		b.props = b.props.Merge(next)
		return
	}
	if !b.this.WillPropsUpdate(next) {
		return
	}
	old := b.props.Clone()
	b.props = b.props.Merge(next)
	b.this.OnPropsUpdated(old)
}

func (b *SystemBase) internalInit(ctx *Context) {
	b.ctx = ctx
	b.initialized = true
	b.this.OnInit()
}

func (b *SystemBase) internalDispose() {
	b.ctx = nil
	b.this.OnDispose()
	b.initialized = false
}

// SystemOf returns the registered system of type T on ctx.
func SystemOf[T System](ctx *Context) (T, bool) {
	for _, s := range ctx.registrar.Systems() {
		if typed, ok := s.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}
