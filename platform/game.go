// Package platform runs the game pipeline inside an ebiten window.
package platform

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/game"
)

// Options configures a windowed Game.
type Options struct {
	Title string

	// ConfigPath is the settings file. Asset paths are resolved against its
	// directory and the debug overlay saves edits to it.
	ConfigPath string
	Watcher    *config.Watcher
	ShowStats  bool

	// Debug enables the ImGui inspector overlay.
	Debug  bool
	Logger *slog.Logger
}

// Game implements ebiten.Game on top of a game.Pipeline.
type Game struct {
	pipeline *game.Pipeline
	canvas   *Canvas
	audio    *Audio
	watcher  *config.Watcher
	debug    *Debug
	stepper  Stepper
	logger   *slog.Logger

	configPath string
	assetDir   string
	sheetPath  string
	showStats  bool
	lastDraw   time.Time
}

// NewGame loads the assets named by settings and builds the pipeline.
// Assets that fail to load are logged and the game falls back to shapes
// and silence.
func NewGame(settings *config.Settings, newPipeline func(game.Host) *game.Pipeline, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	g := &Game{
		canvas:     NewCanvas(),
		audio:      NewAudio(logger),
		watcher:    opts.Watcher,
		logger:     logger,
		configPath: opts.ConfigPath,
		showStats:  opts.ShowStats,
	}
	if opts.ConfigPath != "" {
		g.assetDir = filepath.Dir(opts.ConfigPath)
	}

	g.loadAssets(settings)
	input := Input{Captured: func() bool {
		return g.debug != nil && g.debug.captured()
	}}
	g.pipeline = newPipeline(game.Host{Input: input, Audio: g.audio, Canvas: g.canvas})

	if opts.Debug {
		g.debug = newDebug(g, opts.Title, int(settings.Resolution.W), int(settings.Resolution.H))
	}
	return g
}

// Pipeline returns the pipeline driven by the game loop.
func (g *Game) Pipeline() *game.Pipeline {
	return g.pipeline
}

func (g *Game) loadAssets(settings *config.Settings) {
	if err := g.audio.Load(g.assetDir, settings.Bullet.Sounds); err != nil {
		g.logger.Warn("some sounds failed to load", "error", err)
	}

	path := ResolvePath(g.assetDir, settings.SpriteSheet)
	if path == g.sheetPath {
		return
	}
	g.sheetPath = path

	if path == "" {
		g.canvas.SetTexture(game.SpriteSheet, nil)
		return
	}
	sheet, err := LoadSpriteSheet(path)
	if err != nil {
		g.logger.Warn("sprite sheet unavailable", "error", err)
		g.canvas.SetTexture(game.SpriteSheet, nil)
		return
	}
	g.canvas.SetTexture(game.SpriteSheet, sheet)
	g.logger.Debug("sprite sheet loaded", "path", path, "size", sheet.Bounds().Size())
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}

	select {
	case settings, ok := <-g.watcher.Updates:
		if !ok {
			g.watcher = nil
			return
		}
		g.loadAssets(settings)
		g.pipeline.ApplySettings(settings)
		if g.debug != nil {
			g.debug.syncDraft(settings)
		}
	case err, ok := <-g.watcher.Errors:
		if ok {
			g.logger.Warn("config reload rejected", "path", g.watcher.Path(), "error", err)
		}
	default:
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showStats = !g.showStats
	}

	g.pollWatcher()

	if g.debug != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			g.debug.visible = !g.debug.visible
		}
		g.debug.beginFrame()
		defer g.debug.endFrame()
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.stepper.ShouldUpdate(dt) {
		g.pipeline.Update(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !g.lastDraw.IsZero() {
		dt = now.Sub(g.lastDraw).Seconds()
	}
	g.lastDraw = now

	g.canvas.SetScreen(screen)
	g.pipeline.Draw(dt)

	if g.showStats {
		ebitenutil.DebugPrint(screen, g.pipeline.FrameStats().String())
	}
	if g.debug != nil {
		g.debug.draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
