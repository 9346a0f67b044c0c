package game

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// AsteroidSpawnSystem spawns an asteroid just outside a random point of the
// play area's edge whenever its timer runs out, heading roughly inward.
type AsteroidSpawnSystem struct {
	Settings ecs.Singleton[config.Settings]
	Counters ecs.Singleton[Counters]

	rng    *rand.Rand
	logger *slog.Logger

	// timer counts down to the next spawn; the first asteroid spawns on the
	// first frame.
	timer float64
}

func NewAsteroidSpawnSystem(rng *rand.Rand, logger *slog.Logger) *AsteroidSpawnSystem {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AsteroidSpawnSystem{rng: rng, logger: logger}
}

// Timer returns the seconds left before the next spawn.
func (s *AsteroidSpawnSystem) Timer() float64 {
	return s.timer
}

func (s *AsteroidSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.timer > 0 {
		s.timer -= frame.DeltaTime
		return
	}

	settings := s.Settings.Get()
	asteroid := settings.Asteroid

	radius := sample(s.rng, asteroid.Size)
	position, angle := s.edgePoint(settings.Resolution, radius)
	direction := r2.Rotate(r2.Vec{X: 0, Y: 1}, angle, r2.Vec{})
	speed := sample(s.rng, asteroid.Speed)
	spin := between(s.rng, -asteroid.MaxAngularVelocity, asteroid.MaxAngularVelocity)

	frame.Commands.Spawn(
		Asteroid{},
		Transform{Position: position},
		Velocity{Vector: r2.Scale(speed, direction)},
		AngularVelocity{Value: spin},
		Visual{Color: asteroid.Color.RGBA(), Shape: s.shape(settings, radius)},
		DespawnWhenOffScreen{OuterBoundsRadius: radius},
		Collider{Radius: radius},
	)
	s.Counters.Get().AsteroidsSpawned++

	s.timer = sample(s.rng, asteroid.SpawnDelay)

	s.logger.Debug("asteroid spawned",
		"tick", frame.Tick,
		"x", position.X,
		"y", position.Y,
		"radius", radius,
		"speed", speed,
		"next_in", s.timer,
	)
}

// edgePoint samples a point on the play area's perimeter pushed outward by
// radius, walking the edges clockwise from the top-left corner. The returned
// angle rotates the downward vector (0, 1) into a heading within 45 degrees of
// that edge's inward normal. The point is in world space.
func (s *AsteroidSpawnSystem) edgePoint(resolution config.Size, radius float64) (r2.Vec, float64) {
	w, h := resolution.W, resolution.H

	angle := between(s.rng, -math.Pi/4, math.Pi/4)
	t := between(s.rng, 0, 2*(w+h))

	var p r2.Vec
	switch {
	case t < w:
		p = r2.Vec{X: t, Y: -radius}
	case t < w+h:
		angle += math.Pi / 2
		p = r2.Vec{X: w + radius, Y: t - w}
	case t < 2*w+h:
		angle += math.Pi
		p = r2.Vec{X: t - w - h, Y: h + radius}
	default:
		angle -= math.Pi / 2
		p = r2.Vec{X: -radius, Y: t - 2*w - h}
	}

	return r2.Sub(p, r2.Vec{X: w / 2, Y: h / 2}), angle
}

func (s *AsteroidSpawnSystem) shape(settings *config.Settings, radius float64) Shape {
	sprites := settings.Asteroid.Sprites
	if !settings.UsesSprites() || len(sprites) == 0 {
		return Circle{Radius: radius}
	}
	rect := sprites[s.rng.IntN(len(sprites))]
	return Sprite{
		Texture: SpriteSheet,
		Source:  rect.Rectangle(),
		Size:    r2.Vec{X: 2 * radius, Y: 2 * radius},
	}
}
