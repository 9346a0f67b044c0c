// Package game holds the asteroids simulation: its components, the systems
// that run every frame, and the Pipeline that wires them to a host.
package game

import (
	"image"
	"image/color"

	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Transform places an entity in the world. Rotation is in degrees; 0 faces up
// and negative values turn clockwise on screen.
type Transform struct {
	Position r2.Vec
	Rotation float64
}

// Velocity is linear speed in world units per second.
type Velocity struct {
	Vector r2.Vec
}

// AngularVelocity is rotation speed in degrees per second.
type AngularVelocity struct {
	Value float64
}

// Visual describes how an entity is drawn. It does not change after spawn.
type Visual struct {
	Color color.RGBA
	Shape Shape
}

// Shape is one of Triangle, Circle or Sprite.
type Shape interface {
	isShape()
}

// Triangle is an isosceles triangle whose tip points along the entity's facing.
type Triangle struct {
	Width, Height float64
}

type Circle struct {
	Radius float64
}

// TextureID identifies a texture loaded by the host.
type TextureID int

// SpriteSheet is the texture holding every configured sprite rect.
const SpriteSheet TextureID = 0

// Sprite draws Source from Texture scaled to Size and centred on the entity.
type Sprite struct {
	Texture TextureID
	Source  image.Rectangle
	Size    r2.Vec
}

func (Triangle) isShape() {}
func (Circle) isShape()   {}
func (Sprite) isShape()   {}

// Collider is a circle used for bullet vs asteroid hits.
type Collider struct {
	Radius float64
}

// DespawnWhenOffScreen removes the entity once it leaves the play area by more
// than OuterBoundsRadius, but only after it has existed for the configured
// minimum lifetime.
type DespawnWhenOffScreen struct {
	OuterBoundsRadius float64
	Age               float64
}

type PlayerController struct{}

type Bullet struct{}

type Asteroid struct{}

// RegisterComponents registers every game component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[AngularVelocity](registry)
	ecs.RegisterComponent[Visual](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[DespawnWhenOffScreen](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Asteroid](registry)
}
