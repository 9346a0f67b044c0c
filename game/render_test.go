package game_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestCameraLetterboxing(t *testing.T) {
	resolution := r2.Vec{X: 800, Y: 600}

	tests := []struct {
		name    string
		screen  r2.Vec
		virtual r2.Vec
		scale   float64
	}{
		{"same size", r2.Vec{X: 800, Y: 600}, r2.Vec{X: 800, Y: 600}, 1},
		{"double size", r2.Vec{X: 1600, Y: 1200}, r2.Vec{X: 800, Y: 600}, 2},
		{"wider window", r2.Vec{X: 1600, Y: 600}, r2.Vec{X: 1600, Y: 600}, 1},
		{"taller window", r2.Vec{X: 400, Y: 600}, r2.Vec{X: 800, Y: 1200}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := game.NewCamera(resolution, tt.screen)
			assert.InDelta(t, tt.virtual.X, camera.VirtualSize.X, 1e-9)
			assert.InDelta(t, tt.virtual.Y, camera.VirtualSize.Y, 1e-9)
			assert.InDelta(t, tt.scale, camera.Scale, 1e-9)
		})
	}
}

func TestCameraRoundTrip(t *testing.T) {
	camera := game.NewCamera(r2.Vec{X: 800, Y: 600}, r2.Vec{X: 1600, Y: 1200})

	assert.Equal(t, r2.Vec{X: 800, Y: 600}, camera.WorldToScreen(r2.Vec{}))
	assert.Equal(t, r2.Vec{}, camera.WorldToScreen(r2.Vec{X: -400, Y: -300}))

	for _, p := range []r2.Vec{{X: 0, Y: 0}, {X: 12.5, Y: -40}, {X: -400, Y: 300}} {
		back := camera.ScreenToWorld(camera.WorldToScreen(p))
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}
}

func TestScreenSizeSystemWaitsForResizeToSettle(t *testing.T) {
	canvas := &recordingCanvas{size: r2.Vec{X: 800, Y: 600}}
	w := newTestWorld(t, nil, game.NewScreenSizeSystem(canvas))

	var camera *game.Camera
	require.True(t, w.storage.ReadSingleton(&camera))

	w.scheduler.Once(0.1)
	assert.Equal(t, 1.0, camera.Scale, "first frame fits immediately")
	w.scheduler.Once(0.1)

	canvas.size = r2.Vec{X: 1600, Y: 1200}
	for range 9 {
		w.scheduler.Once(0.1)
	}
	assert.Equal(t, 1.0, camera.Scale, "refit before the delay elapsed")

	for range 2 {
		w.scheduler.Once(0.1)
	}
	assert.InDelta(t, 2.0, camera.Scale, 1e-9)
	assert.Equal(t, r2.Vec{X: 1600, Y: 1200}, camera.ScreenSize)
}

func TestScreenSizeSystemRefitsOnResolutionChange(t *testing.T) {
	canvas := &recordingCanvas{size: r2.Vec{X: 800, Y: 600}}
	w := newTestWorld(t, nil, game.NewScreenSizeSystem(canvas))

	var camera *game.Camera
	require.True(t, w.storage.ReadSingleton(&camera))

	w.scheduler.Once(0.1)
	assert.Equal(t, 1.0, camera.Scale)

	w.settings.Resolution = config.Size{W: 400, H: 300}
	w.scheduler.Once(0.1)
	assert.InDelta(t, 2.0, camera.Scale, 1e-9, "no settle delay for a new resolution")
	assert.InDelta(t, 400, camera.VirtualSize.X, 1e-9)
	assert.InDelta(t, 300, camera.VirtualSize.Y, 1e-9)

	// A pending resize still waits, then fits the new resolution.
	canvas.size = r2.Vec{X: 1600, Y: 1200}
	w.scheduler.Once(0.5)
	assert.InDelta(t, 2.0, camera.Scale, 1e-9)
	w.scheduler.Once(0.6)
	assert.InDelta(t, 4.0, camera.Scale, 1e-9)
}

func TestClearScreenFillsPlayArea(t *testing.T) {
	canvas := &recordingCanvas{size: r2.Vec{X: 1600, Y: 600}}
	w := newTestWorld(t, func(s *config.Settings) {
		s.BackgroundColor = config.Color{R: 1, G: 2, B: 3, A: 255}
	}, game.NewScreenSizeSystem(canvas), game.NewClearScreenSystem(canvas))

	w.scheduler.Once(0)

	require.Len(t, canvas.calls, 2)
	assert.Equal(t, "clear", canvas.calls[0].kind)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, canvas.calls[0].color)

	rect := canvas.calls[1]
	assert.Equal(t, "rect", rect.kind)
	assert.Equal(t, r2.Vec{X: 400, Y: 0}, rect.points[0])
	assert.Equal(t, r2.Vec{X: 800, Y: 600}, rect.size)
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 255}, rect.color)
}

func TestDrawVisualShapes(t *testing.T) {
	canvas := &recordingCanvas{size: r2.Vec{X: 800, Y: 600}}
	w := newTestWorld(t, nil, game.NewDrawVisualSystem(canvas))
	red := color.RGBA{R: 255, A: 255}

	w.storage.Spawn(game.Transform{Rotation: -90}, game.Visual{Color: red, Shape: game.Triangle{Width: 10, Height: 20}})
	w.storage.Spawn(game.Transform{Position: r2.Vec{X: 10, Y: 20}}, game.Visual{Color: red, Shape: game.Circle{Radius: 7}})
	w.storage.Spawn(game.Transform{Position: r2.Vec{X: -100}, Rotation: 45}, game.Visual{Color: red, Shape: game.Sprite{
		Texture: game.SpriteSheet,
		Source:  image.Rect(0, 0, 16, 16),
		Size:    r2.Vec{X: 32, Y: 32},
	}})

	w.scheduler.Once(0)

	triangles := canvas.ofKind("triangle")
	require.Len(t, triangles, 1)
	// Facing right: the tip is half the height to the right of centre.
	tip := triangles[0].points[0]
	assert.InDelta(t, 410, tip.X, 1e-9)
	assert.InDelta(t, 300, tip.Y, 1e-9)

	circles := canvas.ofKind("circle")
	require.Len(t, circles, 1)
	assert.Equal(t, r2.Vec{X: 410, Y: 320}, circles[0].points[0])
	assert.Equal(t, 7.0, circles[0].radius)

	sprites := canvas.ofKind("sprite")
	require.Len(t, sprites, 1)
	assert.Equal(t, r2.Vec{X: 300, Y: 300}, sprites[0].points[0])
	assert.Equal(t, r2.Vec{X: 32, Y: 32}, sprites[0].size)
	assert.InDelta(t, -math.Pi/4, sprites[0].rotation, 1e-12)
	assert.Equal(t, image.Rect(0, 0, 16, 16), sprites[0].source)
}

func TestFrameStatsSystem(t *testing.T) {
	system := &game.FrameStatsSystem{}
	w := newTestWorld(t, nil, system)

	var stats *game.FrameStats
	w.scheduler.Once(0.010)
	w.scheduler.Once(0.020)
	w.scheduler.Once(0.030)
	require.True(t, w.storage.ReadSingleton(&stats))

	assert.Equal(t, 3, stats.Samples)
	assert.InDelta(t, 10, stats.MinMs, 1e-9)
	assert.InDelta(t, 20, stats.AvgMs, 1e-9)
	assert.InDelta(t, 30, stats.MaxMs, 1e-9)

	for range game.FrameHistorySize {
		w.scheduler.Once(0.005)
	}
	assert.Equal(t, game.FrameHistorySize, stats.Samples)
	assert.InDelta(t, 5, stats.MaxMs, 1e-9, "old samples leave the window")
	assert.Contains(t, stats.String(), "avg 5.0")
}
