package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/game"
	"github.com/plus3/asteroids/platform"
	"github.com/plus3/asteroids/telemetry"
)

type options struct {
	configPath  string
	writeConfig string
	seed        uint64
	headless    bool
	realtime    bool
	duration    time.Duration
	tps         int
	statsOut    string
	logJSON     bool
	verbose     bool
	watch       bool
	showStats   bool
	debug       bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "Settings file (YAML). Built-in defaults apply when empty.")
	flag.StringVar(&o.writeConfig, "write-config", "", "Write the effective settings to this file and exit.")
	flag.Uint64Var(&o.seed, "seed", 0, "Random seed. Zero picks one from the clock.")
	flag.BoolVar(&o.headless, "headless", false, "Run the simulation without a window and print a report.")
	flag.BoolVar(&o.realtime, "realtime", false, "Pace a headless run with the wall clock instead of fixed steps.")
	flag.DurationVar(&o.duration, "duration", 10*time.Second, "Simulated length of a headless run.")
	flag.IntVar(&o.tps, "tps", 60, "Simulation updates per second.")
	flag.StringVar(&o.statsOut, "stats-out", "", "Write per-system timings as CSV to this file on exit.")
	flag.BoolVar(&o.logJSON, "log-json", false, "Log as JSON instead of text.")
	flag.BoolVar(&o.verbose, "v", false, "Enable debug logging.")
	flag.BoolVar(&o.watch, "watch", false, "Reload the settings file when it changes.")
	flag.BoolVar(&o.showStats, "show-stats", false, "Show the frame time overlay. F3 toggles it.")
	flag.BoolVar(&o.debug, "debug", false, "Show the ImGui entity inspector. F1 toggles it.")
	flag.Parse()
	return o
}

func newLogger(o options) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if o.logJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func main() {
	o := parseFlags()
	logger := newLogger(o)
	slog.SetDefault(logger)

	settings, err := loadSettings(o.configPath)
	if err != nil {
		logger.Error("failed to load settings", "error", err)
		os.Exit(1)
	}

	if o.writeConfig != "" {
		if err := settings.WriteYAML(o.writeConfig); err != nil {
			logger.Error("failed to write settings", "error", err)
			os.Exit(1)
		}
		logger.Info("settings written", "path", o.writeConfig)
		return
	}

	if o.seed == 0 {
		o.seed = uint64(time.Now().UnixNano())
	}
	if o.tps <= 0 {
		logger.Error("tps must be positive", "tps", o.tps)
		os.Exit(1)
	}
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	logger.Info("starting", "seed", o.seed, "headless", o.headless, "config", o.configPath)

	if o.headless {
		err = runHeadless(o, settings, rng, logger)
	} else {
		err = runWindowed(o, settings, rng, logger)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// newHeadlessPipeline builds a pipeline whose player holds fire and never
// moves.
func newHeadlessPipeline(settings *config.Settings, rng *rand.Rand, logger *slog.Logger) *game.Pipeline {
	input := &game.StaticInput{}
	input.Press(game.KeySpace)
	return game.NewPipeline(settings, game.Host{Input: input}, rng, logger)
}

// headlessFrames is the number of fixed steps covering duration.
func headlessFrames(duration time.Duration, tps int) int {
	return int(duration * time.Duration(tps) / time.Second)
}

// simulate advances the pipeline through duration. Fixed steps of 1/tps
// make a run reproducible for its seed; realtime runs take frame times
// from the scheduler's ticker.
func simulate(ctx context.Context, pipeline *game.Pipeline, duration time.Duration, tps int, realtime bool) {
	if realtime {
		ctx, cancel := context.WithTimeout(ctx, duration)
		defer cancel()
		pipeline.Simulation().Run(ctx, time.Second/time.Duration(tps))
		return
	}

	dt := 1 / float64(tps)
	for range headlessFrames(duration, tps) {
		if ctx.Err() != nil {
			return
		}
		pipeline.Update(dt)
	}
}

func runHeadless(o options, settings *config.Settings, rng *rand.Rand, logger *slog.Logger) error {
	pipeline := newHeadlessPipeline(settings, rng, logger)

	report := &Report{
		Seed:     o.seed,
		Duration: o.duration,
		TPS:      o.tps,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	simulate(ctx, pipeline, o.duration, o.tps, o.realtime)
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Scheduler = pipeline.Simulation().GetStats()
	report.Storage = pipeline.Storage().CollectStats()
	report.Counters = pipeline.Counters()

	if err := finish(o, pipeline, logger); err != nil {
		return err
	}

	fmt.Println("\n--- Asteroids Run Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

func runWindowed(o options, settings *config.Settings, rng *rand.Rand, logger *slog.Logger) error {
	var watcher *config.Watcher
	if o.watch {
		if o.configPath == "" {
			return errors.New("-watch needs -config")
		}
		w, err := config.NewWatcher(o.configPath, config.DefaultDebounce)
		if err != nil {
			return err
		}
		defer w.Close()
		watcher = w
		logger.Info("watching settings", "path", w.Path())
	}

	const title = "Asteroids"
	ebiten.SetWindowSize(int(settings.Resolution.W), int(settings.Resolution.H))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(o.tps)

	g := platform.NewGame(settings, func(host game.Host) *game.Pipeline {
		return game.NewPipeline(settings, host, rng, logger)
	}, platform.Options{
		Title:      title,
		ConfigPath: o.configPath,
		Watcher:    watcher,
		ShowStats:  o.showStats,
		Debug:      o.debug,
		Logger:     logger,
	})

	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return finish(o, g.Pipeline(), logger)
}

// finish logs the run summary and writes the timing CSV when requested.
func finish(o options, pipeline *game.Pipeline, logger *slog.Logger) error {
	telemetry.LogStats(logger, pipeline.Simulation().GetStats(), pipeline.Storage().CollectStats(), pipeline.Counters())

	if o.statsOut == "" {
		return nil
	}

	sw, err := telemetry.CreateStatsFile(o.statsOut)
	if err != nil {
		return err
	}
	defer sw.Close()

	if err := sw.Write("simulation", pipeline.Simulation().GetStats()); err != nil {
		return err
	}
	if err := sw.Write("render", pipeline.Render().GetStats()); err != nil {
		return err
	}
	logger.Info("system timings written", "path", o.statsOut)
	return nil
}
