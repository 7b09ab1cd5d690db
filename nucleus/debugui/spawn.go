package debugui

import "github.com/plus3/nucleus/nucleus"

// SpawnDebugUI creates an inspector entity under mp carrying the entity
// browser, component inspector and performance windows, and registers the
// ImguiSystem on its surface if none is registered yet.
func SpawnDebugUI(manager *nucleus.Manager, mp nucleus.MountingPoint) (*nucleus.Entity, error) {
	e, err := manager.NewEntity(mp, nil, nucleus.WithKey("debugui"))
	if err != nil {
		return nil, err
	}

	registrar := e.Context().Registrar()
	if registrar.GetSystem(nucleus.ComponentTypeFor[*ImguiItem]()) == nil {
		if err := registrar.RegisterSystem(NewImguiSystem()); err != nil {
			e.Dispose(true)
			return nil, err
		}
	}

	browser := NewEntityBrowser(100)
	for _, c := range []nucleus.Component{
		browser,
		NewComponentInspector(browser),
		NewPerformanceStats(120),
	} {
		if err := e.MountComponent(c); err != nil {
			e.Dispose(true)
			return nil, err
		}
	}
	return e, nil
}
