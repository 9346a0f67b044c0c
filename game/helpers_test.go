package game_test

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
	"gonum.org/v1/gonum/spatial/r2"
)

// testWorld is a storage with the game singletons and a scheduler running
// only the systems under test.
type testWorld struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	settings  *config.Settings
}

func newTestWorld(t *testing.T, modify func(s *config.Settings), systems ...ecs.System) *testWorld {
	t.Helper()

	settings := config.Default()
	if modify != nil {
		modify(settings)
	}

	registry := ecs.NewComponentRegistry()
	game.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	resolution := r2.Vec{X: settings.Resolution.W, Y: settings.Resolution.H}
	ecs.NewSingleton(storage, *settings)
	ecs.NewSingleton(storage, game.NewCamera(resolution, resolution))
	ecs.NewSingleton(storage, game.Counters{})

	scheduler := ecs.NewScheduler(storage)
	for _, system := range systems {
		scheduler.Register(system)
	}

	var active *config.Settings
	storage.ReadSingleton(&active)
	return &testWorld{storage: storage, scheduler: scheduler, settings: active}
}

func (w *testWorld) counters() game.Counters {
	var c *game.Counters
	w.storage.ReadSingleton(&c)
	return *c
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func count[T any](storage *ecs.Storage) int {
	return ecs.NewView[T](storage).Count()
}

// recordingAudio remembers every sound played from a pool of sounds.
type recordingAudio struct {
	sounds int
	played []game.SoundID
}

func (a *recordingAudio) Len() int { return a.sounds }

func (a *recordingAudio) Play(sound game.SoundID) {
	a.played = append(a.played, sound)
}

type drawCall struct {
	kind     string
	points   []r2.Vec
	size     r2.Vec
	radius   float64
	rotation float64
	source   image.Rectangle
	color    color.RGBA
}

// recordingCanvas records draw calls and reports a configurable screen size.
type recordingCanvas struct {
	size  r2.Vec
	calls []drawCall
}

func (c *recordingCanvas) ScreenSize() r2.Vec { return c.size }

func (c *recordingCanvas) Clear(clr color.RGBA) {
	c.calls = append(c.calls, drawCall{kind: "clear", color: clr})
}

func (c *recordingCanvas) FillRect(min, size r2.Vec, clr color.RGBA) {
	c.calls = append(c.calls, drawCall{kind: "rect", points: []r2.Vec{min}, size: size, color: clr})
}

func (c *recordingCanvas) FillTriangle(a, b, d r2.Vec, clr color.RGBA) {
	c.calls = append(c.calls, drawCall{kind: "triangle", points: []r2.Vec{a, b, d}, color: clr})
}

func (c *recordingCanvas) FillCircle(center r2.Vec, radius float64, clr color.RGBA) {
	c.calls = append(c.calls, drawCall{kind: "circle", points: []r2.Vec{center}, radius: radius, color: clr})
}

func (c *recordingCanvas) DrawSprite(texture game.TextureID, source image.Rectangle, center, size r2.Vec, rotation float64, tint color.RGBA) {
	c.calls = append(c.calls, drawCall{
		kind:     "sprite",
		points:   []r2.Vec{center},
		size:     size,
		rotation: rotation,
		source:   source,
		color:    tint,
	})
}

func (c *recordingCanvas) ofKind(kind string) []drawCall {
	var out []drawCall
	for _, call := range c.calls {
		if call.kind == kind {
			out = append(out, call)
		}
	}
	return out
}
