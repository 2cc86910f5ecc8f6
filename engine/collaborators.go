package engine

// Input receives device events and keeps per-device state. PrepareEdgeState
// runs once per iteration before the event pump so "just pressed" queries
// compare against the previous iteration.
type Input interface {
	Init() error
	Quit() error
	PrepareEdgeState()
	OnControllerAdded(id DeviceID)
	OnControllerRemoved(id DeviceID)
	OnAxisChanged(ev AxisEvent)
	OnButtonChanged(ev ButtonEvent, down bool)
	OnKeyChanged(code KeyCode, down bool)
	OnMouseButton(button MouseButton, down bool)
	OnMouseMove(ev MouseMoveEvent)
}

// Renderer owns the window and graphics context.
type Renderer interface {
	Init() error
	// PrepareFrame recomputes viewport geometry for a frame that will render.
	PrepareFrame(ft FrameTime)
	// PresentFrame swaps the output buffer.
	PresentFrame() error
	Quit() error
}

// WindowState is implemented by renderers whose window scales itself to the
// logical screen until the user resizes it.
type WindowState interface {
	SetAutoFit(enabled bool)
}

// Audio is the part of the mixer the loop driver touches directly.
type Audio interface {
	Init() error
	Deinit() error
	// Update advances fades and scheduled stops.
	Update()
}

// Importer is the 3D/asset importer lifecycle hook.
type Importer interface {
	Init() error
	Quit() error
}

type NopImporter struct{}

func (NopImporter) Init() error { return nil }
func (NopImporter) Quit() error { return nil }

type nopAudio struct{}

func (nopAudio) Init() error   { return nil }
func (nopAudio) Deinit() error { return nil }
func (nopAudio) Update()       {}
