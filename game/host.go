package game

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Key is a keyboard key the game reacts to.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyLeft
	KeyDown
	KeyRight
	KeySpace
)

// Input polls the keyboard and mouse.
type Input interface {
	// CursorPosition returns the mouse position in screen pixels.
	CursorPosition() r2.Vec
	IsKeyDown(key Key) bool
}

// SoundID indexes the loaded bullet sound pool.
type SoundID int

// Audio plays sound effects. Play must not block.
type Audio interface {
	Play(sound SoundID)
	// Len returns the number of playable sounds. Valid ids are [0, Len).
	Len() int
}

// Canvas draws onto the current frame. All coordinates and sizes are in
// screen pixels; rotation is in radians, clockwise on screen.
type Canvas interface {
	ScreenSize() r2.Vec
	Clear(c color.RGBA)
	FillRect(min, size r2.Vec, c color.RGBA)
	FillTriangle(a, b, c r2.Vec, clr color.RGBA)
	FillCircle(center r2.Vec, radius float64, c color.RGBA)
	DrawSprite(texture TextureID, source image.Rectangle, center, size r2.Vec, rotation float64, tint color.RGBA)
}

// Host bundles the platform services a Pipeline needs.
type Host struct {
	Input  Input
	Audio  Audio
	Canvas Canvas
}

// NopAudio discards every sound.
type NopAudio struct{}

func (NopAudio) Play(SoundID) {}
func (NopAudio) Len() int     { return 0 }

// StaticInput reports a fixed cursor position and set of held keys.
type StaticInput struct {
	Cursor r2.Vec
	Keys   map[Key]bool
}

func (in *StaticInput) CursorPosition() r2.Vec {
	return in.Cursor
}

func (in *StaticInput) IsKeyDown(key Key) bool {
	return in.Keys[key]
}

// Press marks key as held.
func (in *StaticInput) Press(key Key) {
	if in.Keys == nil {
		in.Keys = make(map[Key]bool)
	}
	in.Keys[key] = true
}

// Release marks key as no longer held.
func (in *StaticInput) Release(key Key) {
	delete(in.Keys, key)
}

// NopCanvas draws nothing and reports a fixed screen size.
type NopCanvas struct {
	Size r2.Vec
}

func (c NopCanvas) ScreenSize() r2.Vec { return c.Size }
func (NopCanvas) Clear(color.RGBA)     {}

func (NopCanvas) FillRect(r2.Vec, r2.Vec, color.RGBA)             {}
func (NopCanvas) FillTriangle(r2.Vec, r2.Vec, r2.Vec, color.RGBA) {}
func (NopCanvas) FillCircle(r2.Vec, float64, color.RGBA)          {}

func (NopCanvas) DrawSprite(TextureID, image.Rectangle, r2.Vec, r2.Vec, float64, color.RGBA) {}
