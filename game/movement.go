package game

import (
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// MoveSystem integrates position from velocity.
type MoveSystem struct {
	Movers ecs.Query[struct {
		*Transform
		*Velocity
	}]
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		item.Transform.Position = r2.Add(item.Transform.Position, r2.Scale(frame.DeltaTime, item.Velocity.Vector))
	}
}

// RotateSystem integrates rotation from angular velocity.
type RotateSystem struct {
	Spinners ecs.Query[struct {
		*Transform
		*AngularVelocity
	}]
}

func (s *RotateSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Spinners.Values() {
		item.Transform.Rotation += item.AngularVelocity.Value * frame.DeltaTime
	}
}

// AgeSystem advances the lifetime of every despawnable entity.
type AgeSystem struct {
	Aging ecs.Query[struct {
		*DespawnWhenOffScreen
	}]
}

func (s *AgeSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Aging.Values() {
		item.DespawnWhenOffScreen.Age += frame.DeltaTime
	}
}
