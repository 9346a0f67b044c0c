package game_test

import (
	"testing"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type bulletView = struct {
	ecs.EntityId
	*game.Transform
	*game.Velocity
	*game.Visual
	*game.Collider
	*game.DespawnWhenOffScreen
	*game.Bullet
}

func newBulletWorld(t *testing.T, input *game.StaticInput, audio game.Audio) (*testWorld, *game.BulletSpawnSystem) {
	t.Helper()
	spawner := game.NewBulletSpawnSystem(input, audio, newRand(1))
	w := newTestWorld(t, func(s *config.Settings) {
		s.Bullet.FireDelay = 0.25
		s.Bullet.Speed = 100
		s.Bullet.Size = 10
		s.Bullet.Sounds = []string{"a.wav", "b.wav"}
	}, spawner)
	return w, spawner
}

func TestBulletSpawnSingleShot(t *testing.T) {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	audio := &recordingAudio{sounds: 2}
	w, spawner := newBulletWorld(t, input, audio)
	w.storage.Spawn(game.PlayerController{}, game.Transform{Position: r2.Vec{X: 3, Y: 4}, Rotation: -90})

	w.scheduler.Once(1.0 / 60)

	bullets := ecs.NewView[bulletView](w.storage)
	require.Equal(t, 1, bullets.Count())
	assert.Equal(t, 0.25, spawner.Cooldown())

	for bullet := range bullets.Values() {
		assert.Equal(t, r2.Vec{X: 3, Y: 4}, bullet.Transform.Position)
		assert.Equal(t, -90.0, bullet.Transform.Rotation)
		assert.InDelta(t, 100, bullet.Velocity.Vector.X, 1e-9)
		assert.InDelta(t, 0, bullet.Velocity.Vector.Y, 1e-9)
		assert.Equal(t, 5.0, bullet.Collider.Radius)
		assert.Equal(t, game.DespawnWhenOffScreen{OuterBoundsRadius: 10}, *bullet.DespawnWhenOffScreen)
		assert.Equal(t, game.Circle{Radius: 5}, bullet.Visual.Shape)
		assert.Equal(t, w.settings.Bullet.Color.RGBA(), bullet.Visual.Color)
	}

	require.Len(t, audio.played, 1)
	assert.Contains(t, []game.SoundID{0, 1}, audio.played[0])
	assert.Equal(t, int64(1), w.counters().BulletsFired)
}

func TestBulletSpawnHoldingFireRespectsDelay(t *testing.T) {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	audio := &recordingAudio{sounds: 2}
	w, _ := newBulletWorld(t, input, audio)
	w.storage.Spawn(game.PlayerController{}, game.Transform{})

	bullets := ecs.NewView[bulletView](w.storage)

	// Hold fire for three fire delays at a tenth of the delay per frame.
	const delay = 0.25
	previous := 0
	for range 30 {
		w.scheduler.Once(delay / 10)

		n := bullets.Count()
		assert.LessOrEqual(t, n-previous, 1, "more than one bullet in a frame")
		previous = n
	}

	assert.Equal(t, 3, bullets.Count())
	assert.Len(t, audio.played, 3)
}

func TestBulletSpawnRequiresFireKey(t *testing.T) {
	input := &game.StaticInput{}
	w, spawner := newBulletWorld(t, input, game.NopAudio{})
	w.storage.Spawn(game.PlayerController{}, game.Transform{})

	for range 10 {
		w.scheduler.Once(0.1)
	}
	assert.Equal(t, 0, count[struct{ *game.Bullet }](w.storage))
	assert.Equal(t, 0.0, spawner.Cooldown())

	input.Press(game.KeySpace)
	w.scheduler.Once(0.1)
	assert.Equal(t, 1, count[struct{ *game.Bullet }](w.storage))

	input.Release(game.KeySpace)
	for range 10 {
		w.scheduler.Once(0.1)
	}
	assert.Equal(t, 1, count[struct{ *game.Bullet }](w.storage))
}

func TestBulletSpawnWithoutSoundsIsSilent(t *testing.T) {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	audio := &recordingAudio{}
	spawner := game.NewBulletSpawnSystem(input, audio, newRand(1))
	w := newTestWorld(t, nil, spawner)
	w.storage.Spawn(game.PlayerController{}, game.Transform{})

	w.scheduler.Once(0.1)

	assert.Equal(t, 1, count[struct{ *game.Bullet }](w.storage))
	assert.Empty(t, audio.played)
}

func TestBulletSoundsDrawFromLoadedPool(t *testing.T) {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	// Three sounds configured, one of them failed to load.
	audio := &recordingAudio{sounds: 2}
	spawner := game.NewBulletSpawnSystem(input, audio, newRand(5))
	w := newTestWorld(t, func(s *config.Settings) {
		s.Bullet.FireDelay = 0
		s.Bullet.Sounds = []string{"a.wav", "missing.wav", "c.wav"}
	}, spawner)
	w.storage.Spawn(game.PlayerController{}, game.Transform{})

	for range 200 {
		w.scheduler.Once(1.0 / 60)
	}

	require.Len(t, audio.played, 200)
	seen := map[game.SoundID]int{}
	for _, id := range audio.played {
		seen[id]++
	}
	assert.Len(t, seen, 2)
	assert.Greater(t, seen[0], 50)
	assert.Greater(t, seen[1], 50)
}

func TestBulletSpriteFromSheet(t *testing.T) {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	spawner := game.NewBulletSpawnSystem(input, game.NopAudio{}, newRand(1))
	w := newTestWorld(t, func(s *config.Settings) {
		s.SpriteSheet = "sheet.png"
		s.Bullet.Size = 8
		s.Bullet.Sprite = config.Rect{X: 16, Y: 0, W: 8, H: 8}
	}, spawner)
	w.storage.Spawn(game.PlayerController{}, game.Transform{})

	w.scheduler.Once(0.1)

	for bullet := range ecs.NewView[bulletView](w.storage).Values() {
		sprite, ok := bullet.Visual.Shape.(game.Sprite)
		require.True(t, ok)
		assert.Equal(t, game.SpriteSheet, sprite.Texture)
		assert.Equal(t, w.settings.Bullet.Sprite.Rectangle(), sprite.Source)
		assert.Equal(t, r2.Vec{X: 8, Y: 8}, sprite.Size)
	}
}
