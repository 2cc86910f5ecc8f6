package engine

import "fmt"

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type fakeInput struct {
	rec     *recorder
	initErr error
	quitErr error
}

func (f *fakeInput) Init() error                     { f.rec.add("input.init"); return f.initErr }
func (f *fakeInput) Quit() error                     { f.rec.add("input.quit"); return f.quitErr }
func (f *fakeInput) PrepareEdgeState()               { f.rec.add("input.prepare") }
func (f *fakeInput) OnControllerAdded(id DeviceID)   { f.rec.add("input.added %d", id) }
func (f *fakeInput) OnControllerRemoved(id DeviceID) { f.rec.add("input.removed %d", id) }
func (f *fakeInput) OnAxisChanged(ev AxisEvent) {
	f.rec.add("input.axis %d %d %.2f", ev.Device, ev.Axis, ev.Value)
}
func (f *fakeInput) OnButtonChanged(ev ButtonEvent, down bool) {
	f.rec.add("input.button %d %d %t", ev.Device, ev.Button, down)
}
func (f *fakeInput) OnKeyChanged(code KeyCode, down bool) { f.rec.add("input.key %d %t", code, down) }
func (f *fakeInput) OnMouseButton(b MouseButton, down bool) {
	f.rec.add("input.mouse %d %t", b, down)
}
func (f *fakeInput) OnMouseMove(ev MouseMoveEvent) { f.rec.add("input.move %d %d", ev.X, ev.Y) }

type fakeRenderer struct {
	rec        *recorder
	initErr    error
	presentErr error
	autoFit    bool
	lastFrame  FrameTime
}

func (f *fakeRenderer) Init() error { f.rec.add("renderer.init"); return f.initErr }
func (f *fakeRenderer) Quit() error { f.rec.add("renderer.quit"); return nil }
func (f *fakeRenderer) PrepareFrame(ft FrameTime) {
	f.lastFrame = ft
	f.rec.add("renderer.prepare")
}
func (f *fakeRenderer) PresentFrame() error { f.rec.add("renderer.present"); return f.presentErr }
func (f *fakeRenderer) SetAutoFit(enabled bool) {
	f.autoFit = enabled
	f.rec.add("renderer.autofit %t", enabled)
}

type fakeAudio struct {
	rec     *recorder
	initErr error
}

func (f *fakeAudio) Init() error   { f.rec.add("audio.init"); return f.initErr }
func (f *fakeAudio) Deinit() error { f.rec.add("audio.deinit"); return nil }
func (f *fakeAudio) Update()       { f.rec.add("audio.update") }

type fakeImporter struct {
	rec     *recorder
	initErr error
}

func (f *fakeImporter) Init() error { f.rec.add("importer.init"); return f.initErr }
func (f *fakeImporter) Quit() error { f.rec.add("importer.quit"); return nil }
