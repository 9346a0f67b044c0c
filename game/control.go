package game

import (
	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

var moveBindings = []struct {
	primary, alternate Key
	direction          r2.Vec
}{
	{KeyW, KeyUp, r2.Vec{X: 0, Y: -1}},
	{KeyA, KeyLeft, r2.Vec{X: -1, Y: 0}},
	{KeyS, KeyDown, r2.Vec{X: 0, Y: 1}},
	{KeyD, KeyRight, r2.Vec{X: 1, Y: 0}},
}

// ControlSystem turns the player toward the cursor and sets its velocity from
// the held movement keys.
type ControlSystem struct {
	Settings ecs.Singleton[config.Settings]
	Camera   ecs.Singleton[Camera]
	Players  ecs.Query[struct {
		*Transform
		*Velocity
		*PlayerController
	}]

	input Input
}

func NewControlSystem(input Input) *ControlSystem {
	return &ControlSystem{input: input}
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	settings := s.Settings.Get()
	cursor := s.Camera.Get().ScreenToWorld(s.input.CursorPosition())

	var direction r2.Vec
	for _, binding := range moveBindings {
		if s.input.IsKeyDown(binding.primary) || s.input.IsKeyDown(binding.alternate) {
			direction = r2.Add(direction, binding.direction)
		}
	}
	if direction != (r2.Vec{}) {
		direction = r2.Unit(direction)
	}
	velocity := r2.Scale(settings.Player.MaxSpeed, direction)

	for player := range s.Players.Values() {
		if rotation, ok := rotationToward(r2.Sub(cursor, player.Transform.Position)); ok {
			player.Transform.Rotation = rotation
		}
		player.Velocity.Vector = velocity
	}
}
