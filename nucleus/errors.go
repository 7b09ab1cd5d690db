package nucleus

import "errors"

var (
	ErrAlreadyMounted         = errors.New("nucleus: already mounted")
	ErrNotMounted             = errors.New("nucleus: not mounted")
	ErrAlreadyAssociated      = errors.New("nucleus: node already has an entity")
	ErrDisposedMountingPoint  = errors.New("nucleus: mounting point has been disposed")
	ErrDisposed               = errors.New("nucleus: entity has been disposed")
	ErrDuplicateComponentType = errors.New("nucleus: a component of this type is already mounted")
	ErrDuplicateSystemType    = errors.New("nucleus: a system is already registered for this component type")
	ErrNotRegistered          = errors.New("nucleus: system not registered for this component type")
	ErrNotInitialized         = errors.New("nucleus: system has not been initialized")
	ErrInvalidMountingPoint   = errors.New("nucleus: mounting point must be a Surface, Node or *Entity")
	ErrInvalidSystem          = errors.New("nucleus: system has no component type, call InitSystem")
)
