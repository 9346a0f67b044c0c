// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Windows are entities of an overlay storage; the built-in windows inspect a
// separate target storage.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/asteroids/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Selection is the entity and archetype picked in the inspector windows.
type Selection struct {
	Entity    ecs.EntityId
	Archetype *uint32
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute updates input state and queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	state.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	state.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Overlay owns the storage and scheduler that hold the debug windows.
// Update must run between the ImGui backend's BeginFrame and EndFrame.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[ImguiInputState]
	selection *ecs.Singleton[Selection]
}

func NewOverlay() *Overlay {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	storage := ecs.NewStorage(registry)

	o := &Overlay{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage),
		input:     ecs.NewSingleton(storage, ImguiInputState{}),
		selection: ecs.NewSingleton(storage, Selection{}),
	}
	o.scheduler.Register(&ImguiSystem{})
	return o
}

// AddWindow spawns a window whose render function runs every frame.
func (o *Overlay) AddWindow(render func()) ecs.EntityId {
	return o.storage.Spawn(ImguiItem{Render: render})
}

// Inspect adds the entity browser, component inspector, archetype viewer,
// query debugger and storage stats windows for target.
func (o *Overlay) Inspect(target *ecs.Storage) {
	browser := newEntityBrowser(target, o.selection, 100)
	inspector := &componentInspector{target: target, selection: o.selection}
	archetypes := newArchetypeViewer(target, o.selection)
	queries := newQueryDebugger(target)
	stats := newStorageStats(target, 120)

	o.AddWindow(browser.Render)
	o.AddWindow(inspector.Render)
	o.AddWindow(archetypes.Render)
	o.AddWindow(queries.Render)
	o.AddWindow(stats.Render)
}

func (o *Overlay) Update() {
	o.scheduler.Once(0)
}

// InputState reports whether ImGui consumed input during the last Update.
func (o *Overlay) InputState() ImguiInputState {
	return *o.input.Get()
}

// Selected returns the entity picked in the entity browser.
func (o *Overlay) Selected() ecs.EntityId {
	return o.selection.Get().Entity
}

func (o *Overlay) Storage() *ecs.Storage {
	return o.storage
}
