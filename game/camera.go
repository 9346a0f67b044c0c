package game

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Camera maps between world space (origin at the centre of the play area,
// y down) and screen pixels. It is stored as a singleton and refreshed by
// ScreenSizeSystem.
type Camera struct {
	// VirtualSize is the world area visible on screen. It covers the whole
	// configured resolution and extends along one axis to match the window's
	// aspect ratio.
	VirtualSize r2.Vec
	ScreenSize  r2.Vec
	Scale       float64 // screen pixels per world unit
}

// NewCamera fits resolution into a screen of the given size, letterboxing by
// widening the visible world along one axis instead of stretching.
func NewCamera(resolution, screen r2.Vec) Camera {
	if screen.X <= 0 || screen.Y <= 0 || resolution.X <= 0 || resolution.Y <= 0 {
		return Camera{VirtualSize: resolution, ScreenSize: resolution, Scale: 1}
	}

	realAspect := screen.X / screen.Y
	targetAspect := resolution.X / resolution.Y

	var virtual r2.Vec
	if targetAspect < realAspect {
		virtual = r2.Vec{X: realAspect * resolution.Y, Y: resolution.Y}
	} else {
		virtual = r2.Vec{X: resolution.X, Y: resolution.X / realAspect}
	}

	return Camera{
		VirtualSize: virtual,
		ScreenSize:  screen,
		Scale:       screen.X / virtual.X,
	}
}

// WorldToScreen converts a world position to screen pixels.
func (c Camera) WorldToScreen(p r2.Vec) r2.Vec {
	return r2.Scale(c.scale(), r2.Add(p, r2.Scale(0.5, c.VirtualSize)))
}

// ScreenToWorld converts screen pixels to a world position.
func (c Camera) ScreenToWorld(p r2.Vec) r2.Vec {
	return r2.Sub(r2.Scale(1/c.scale(), p), r2.Scale(0.5, c.VirtualSize))
}

// Length converts a world distance to screen pixels.
func (c Camera) Length(d float64) float64 {
	return d * c.scale()
}

func (c Camera) scale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}
