package game

import (
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// CollisionSystem destroys every asteroid touched by a bullet together with
// all bullets touching it.
type CollisionSystem struct {
	Counters  ecs.Singleton[Counters]
	Asteroids ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Collider
		*Asteroid
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Collider
		*Bullet
		_ *Asteroid `ecs:"without"`
	}]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	counters := s.Counters.Get()

	for asteroid := range s.Asteroids.Values() {
		hit := false
		for bullet := range s.Bullets.Values() {
			if !overlaps(asteroid.Transform.Position, asteroid.Collider.Radius, bullet.Transform.Position, bullet.Collider.Radius) {
				continue
			}
			hit = true
			if !frame.Commands.Deleting(bullet.EntityId) {
				counters.BulletsHit++
			}
			frame.Commands.Delete(bullet.EntityId)
		}

		if hit {
			counters.AsteroidsDestroyed++
			frame.Commands.Delete(asteroid.EntityId)
		}
	}
}

// overlaps reports whether two circles intersect. Touching circles do not.
func overlaps(p1 r2.Vec, radius1 float64, p2 r2.Vec, radius2 float64) bool {
	d := radius1 + radius2
	return r2.Norm2(r2.Sub(p1, p2)) < d*d
}
