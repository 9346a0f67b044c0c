package game

import (
	"log/slog"
	"math/rand/v2"

	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Pipeline owns the entity storage and runs the simulation and render
// systems over it in a fixed order.
type Pipeline struct {
	storage    *ecs.Storage
	simulation *ecs.Scheduler
	render     *ecs.Scheduler

	settings   *ecs.Singleton[config.Settings]
	camera     *ecs.Singleton[Camera]
	frameStats *ecs.Singleton[FrameStats]
	counters   *ecs.Singleton[Counters]

	player *ecs.EntityRef
	logger *slog.Logger
}

// NewPipeline spawns the player and assembles the simulation and render
// schedulers. Nil host services are replaced with no-op ones.
func NewPipeline(settings *config.Settings, host Host, rng *rand.Rand, logger *slog.Logger) *Pipeline {
	if rng == nil {
		panic("NewPipeline requires a random source")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if host.Audio == nil {
		host.Audio = NopAudio{}
	}
	if host.Input == nil {
		host.Input = &StaticInput{}
	}
	if host.Canvas == nil {
		host.Canvas = NopCanvas{Size: r2.Vec{X: settings.Resolution.W, Y: settings.Resolution.H}}
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	resolution := r2.Vec{X: settings.Resolution.W, Y: settings.Resolution.H}
	p := &Pipeline{
		storage:    storage,
		settings:   ecs.NewSingleton(storage, *settings),
		camera:     ecs.NewSingleton(storage, NewCamera(resolution, resolution)),
		frameStats: ecs.NewSingleton(storage, FrameStats{}),
		counters:   ecs.NewSingleton(storage, Counters{}),
		logger:     logger,
	}

	playerId := storage.Spawn(
		PlayerController{},
		Transform{},
		Velocity{},
		Visual{Color: settings.Player.Color.RGBA(), Shape: playerShape(settings)},
		Collider{Radius: settings.Player.Size / 2},
	)
	p.player = storage.CreateEntityRef(playerId)

	p.simulation = ecs.NewScheduler(storage)
	p.simulation.Register(NewControlSystem(host.Input))
	p.simulation.Register(&MoveSystem{})
	p.simulation.Register(&RotateSystem{})
	p.simulation.Register(NewBulletSpawnSystem(host.Input, host.Audio, rng))
	p.simulation.Register(NewAsteroidSpawnSystem(rng, logger))
	p.simulation.Register(&CollisionSystem{})
	p.simulation.Register(&DespawnSystem{})
	p.simulation.Register(&AgeSystem{})

	// Rendering never frees slots; the simulation scheduler ends the frame.
	p.render = ecs.NewScheduler(storage)
	p.render.EndFrame = false
	p.render.Register(NewScreenSizeSystem(host.Canvas))
	p.render.Register(NewClearScreenSystem(host.Canvas))
	p.render.Register(NewDrawVisualSystem(host.Canvas))
	p.render.Register(&FrameStatsSystem{})

	logger.Debug("pipeline assembled",
		"player", playerId,
		"simulation", p.simulation.Systems(),
		"render", p.render.Systems(),
	)
	return p
}

func playerShape(settings *config.Settings) Shape {
	player := settings.Player
	if settings.UsesSprites() && !player.Sprite.Empty() {
		return Sprite{Texture: SpriteSheet, Source: player.Sprite.Rectangle(), Size: r2.Vec{X: player.Size, Y: player.Size}}
	}
	return Triangle{Width: player.Size, Height: player.Size}
}

// Update advances the simulation by dt seconds.
func (p *Pipeline) Update(dt float64) {
	p.simulation.Once(dt)
}

// Draw runs the render systems. dt is the time since the previous draw.
func (p *Pipeline) Draw(dt float64) {
	p.render.Once(dt)
}

// ApplySettings replaces the settings read by every system from the next
// frame on. Entities already spawned keep their visuals.
func (p *Pipeline) ApplySettings(settings *config.Settings) {
	p.settings.Set(*settings)
	p.logger.Info("settings applied")
}

// Settings returns the active settings.
func (p *Pipeline) Settings() *config.Settings {
	return p.settings.Get()
}

func (p *Pipeline) Storage() *ecs.Storage {
	return p.storage
}

// Simulation returns the scheduler driven by Update.
func (p *Pipeline) Simulation() *ecs.Scheduler {
	return p.simulation
}

// Render returns the scheduler driven by Draw.
func (p *Pipeline) Render() *ecs.Scheduler {
	return p.render
}

// Player returns the player entity.
func (p *Pipeline) Player() (ecs.EntityId, bool) {
	return p.storage.ResolveEntityRef(p.player)
}

func (p *Pipeline) Camera() Camera {
	return *p.camera.Get()
}

func (p *Pipeline) FrameStats() FrameStats {
	return *p.frameStats.Get()
}

func (p *Pipeline) Counters() Counters {
	return *p.counters.Get()
}
