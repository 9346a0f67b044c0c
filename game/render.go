package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// ScreenSizeDelay is how long the window size must stay changed before the
// camera is refitted.
const ScreenSizeDelay = 1.0

// ScreenSizeSystem refits the Camera to the window once a resize has settled,
// and immediately when the configured resolution changes.
type ScreenSizeSystem struct {
	Settings ecs.Singleton[config.Settings]
	Camera   ecs.Singleton[Camera]

	canvas Canvas

	delay          float64
	lastSize       r2.Vec
	lastResolution r2.Vec
}

func NewScreenSizeSystem(canvas Canvas) *ScreenSizeSystem {
	return &ScreenSizeSystem{canvas: canvas}
}

func (s *ScreenSizeSystem) Execute(frame *ecs.UpdateFrame) {
	size := s.canvas.ScreenSize()
	if size.X <= 0 || size.Y <= 0 {
		return
	}

	resolution := s.Settings.Get().Resolution
	target := r2.Vec{X: resolution.W, Y: resolution.H}

	// A new play area applies at once against the settled window size.
	if target != s.lastResolution && s.lastSize != (r2.Vec{}) {
		s.fit(target, s.lastSize)
	}

	if size == s.lastSize {
		s.delay = ScreenSizeDelay
		return
	}

	s.delay -= frame.DeltaTime
	if s.delay > 0 {
		return
	}
	s.fit(target, size)
}

func (s *ScreenSizeSystem) fit(resolution, size r2.Vec) {
	s.lastSize = size
	s.lastResolution = resolution
	s.Camera.Set(NewCamera(resolution, size))
}

// ClearScreenSystem paints the window white and the play area in the
// configured background colour.
type ClearScreenSystem struct {
	Settings ecs.Singleton[config.Settings]
	Camera   ecs.Singleton[Camera]

	canvas Canvas
}

func NewClearScreenSystem(canvas Canvas) *ClearScreenSystem {
	return &ClearScreenSystem{canvas: canvas}
}

func (s *ClearScreenSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	camera := s.Camera.Get()

	resolution := r2.Vec{X: settings.Resolution.W, Y: settings.Resolution.H}
	topLeft := camera.WorldToScreen(r2.Scale(-0.5, resolution))

	s.canvas.Clear(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	s.canvas.FillRect(topLeft, r2.Scale(camera.Scale, resolution), settings.BackgroundColor.RGBA())
}

// DrawVisualSystem draws every entity that has a Visual.
type DrawVisualSystem struct {
	Camera  ecs.Singleton[Camera]
	Visuals ecs.Query[struct {
		*Transform
		*Visual
	}]

	canvas Canvas
}

func NewDrawVisualSystem(canvas Canvas) *DrawVisualSystem {
	return &DrawVisualSystem{canvas: canvas}
}

func (s *DrawVisualSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()

	for item := range s.Visuals.Values() {
		position := item.Transform.Position
		rotation := item.Transform.Rotation

		switch shape := item.Visual.Shape.(type) {
		case Triangle:
			tip := r2.Vec{X: 0, Y: -shape.Height / 2}
			right := r2.Vec{X: shape.Width / 2, Y: shape.Height / 2}
			left := r2.Vec{X: -shape.Width / 2, Y: shape.Height / 2}
			s.canvas.FillTriangle(
				camera.WorldToScreen(r2.Add(position, orient(tip, rotation))),
				camera.WorldToScreen(r2.Add(position, orient(right, rotation))),
				camera.WorldToScreen(r2.Add(position, orient(left, rotation))),
				item.Visual.Color,
			)
		case Circle:
			s.canvas.FillCircle(camera.WorldToScreen(position), camera.Length(shape.Radius), item.Visual.Color)
		case Sprite:
			s.canvas.DrawSprite(
				shape.Texture,
				shape.Source,
				camera.WorldToScreen(position),
				r2.Scale(camera.Scale, shape.Size),
				-radians(rotation),
				item.Visual.Color,
			)
		}
	}
}

// FrameHistorySize is the number of frames FrameStatsSystem averages over.
const FrameHistorySize = 60

// FrameStats summarises recent frame times in milliseconds.
type FrameStats struct {
	MinMs, AvgMs, MaxMs float64
	Samples             int
}

func (f FrameStats) String() string {
	return fmt.Sprintf("frame ms  min %.1f  avg %.1f  max %.1f", f.MinMs, f.AvgMs, f.MaxMs)
}

// FrameStatsSystem keeps a ring buffer of frame times and publishes the
// FrameStats singleton.
type FrameStatsSystem struct {
	Stats ecs.Singleton[FrameStats]

	history [FrameHistorySize]float64
	next    int
	filled  int
}

func (s *FrameStatsSystem) Execute(frame *ecs.UpdateFrame) {
	s.history[s.next] = frame.DeltaTime
	s.next = (s.next + 1) % FrameHistorySize
	if s.filled < FrameHistorySize {
		s.filled++
	}

	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, dt := range s.history[:s.filled] {
		lo = min(lo, dt)
		hi = max(hi, dt)
		sum += dt
	}

	s.Stats.Set(FrameStats{
		MinMs:   lo * 1000,
		AvgMs:   sum / float64(s.filled) * 1000,
		MaxMs:   hi * 1000,
		Samples: s.filled,
	})
}
