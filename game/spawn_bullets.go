package game

import (
	"math/rand/v2"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// BulletSpawnSystem fires a bullet from the player while Space is held, at
// most once per configured fire delay.
type BulletSpawnSystem struct {
	Settings ecs.Singleton[config.Settings]
	Counters ecs.Singleton[Counters]
	Players  ecs.Query[struct {
		*Transform
		*PlayerController
	}]

	input Input
	audio Audio
	rng   *rand.Rand

	// cooldown is the time left until the next shot is allowed.
	cooldown float64
}

func NewBulletSpawnSystem(input Input, audio Audio, rng *rand.Rand) *BulletSpawnSystem {
	return &BulletSpawnSystem{input: input, audio: audio, rng: rng}
}

// Cooldown returns the seconds left before the next shot.
func (s *BulletSpawnSystem) Cooldown() float64 {
	return s.cooldown
}

func (s *BulletSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if s.cooldown > 0 {
		s.cooldown -= frame.DeltaTime
		return
	}
	if !s.input.IsKeyDown(KeySpace) {
		return
	}

	settings := s.Settings.Get()
	player, ok := s.Players.First()
	if !ok {
		return
	}

	bullet := settings.Bullet
	frame.Commands.Spawn(
		Bullet{},
		Transform{
			Position: player.Transform.Position,
			Rotation: player.Transform.Rotation,
		},
		Velocity{Vector: r2.Scale(bullet.Speed, forward(player.Transform.Rotation))},
		Visual{Color: bullet.Color.RGBA(), Shape: bulletShape(settings)},
		DespawnWhenOffScreen{OuterBoundsRadius: bullet.Size},
		Collider{Radius: bullet.Size / 2},
	)
	s.cooldown = bullet.FireDelay
	s.Counters.Get().BulletsFired++

	if n := s.audio.Len(); n > 0 {
		s.audio.Play(SoundID(s.rng.IntN(n)))
	}
}

func bulletShape(settings *config.Settings) Shape {
	b := settings.Bullet
	if settings.UsesSprites() && !b.Sprite.Empty() {
		return Sprite{Texture: SpriteSheet, Source: b.Sprite.Rectangle(), Size: r2.Vec{X: b.Size, Y: b.Size}}
	}
	return Circle{Radius: b.Size / 2}
}
