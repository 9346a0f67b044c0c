package platform

import (
	"fmt"
	"log/slog"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/asteroids/config"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/ecs/debugui"
	debugui_ebiten "github.com/plus3/asteroids/ecs/debugui/ebiten"
)

const latencyHistorySize = 100

// Debug draws the ImGui inspector over the game. F1 toggles it.
type Debug struct {
	backend *debugui_ebiten.ImguiBackend
	overlay *debugui.Overlay
	visible bool

	game    *Game
	latency *latencyHistory

	draft      config.Settings
	draftError string
}

func newDebug(g *Game, title string, width, height int) *Debug {
	d := &Debug{
		backend: debugui_ebiten.NewImguiBackend(title, width, height),
		overlay: debugui.NewOverlay(),
		visible: true,
		game:    g,
		latency: newLatencyHistory(latencyHistorySize),
		draft:   *g.pipeline.Settings(),
	}

	d.overlay.Inspect(g.pipeline.Storage())
	d.overlay.AddWindow(d.renderControl)
	d.overlay.AddWindow(d.renderSystems)
	d.overlay.AddWindow(d.renderSettings)
	return d
}

// captured reports whether ImGui is using the keyboard, so game keys are
// ignored while typing into the overlay.
func (d *Debug) captured() bool {
	return d.visible && d.overlay.InputState().WantCaptureKeyboard
}

func (d *Debug) beginFrame() {
	d.backend.BeginFrame()
	d.latency.Record("sim/", d.game.pipeline.Simulation().GetStats())
	d.latency.Record("render/", d.game.pipeline.Render().GetStats())
	d.latency.Advance()
	if d.visible {
		d.overlay.Update()
	}
}

func (d *Debug) endFrame() {
	d.backend.EndFrame()
}

func (d *Debug) draw(screen *ebiten.Image) {
	d.backend.Draw(screen)
}

func (d *Debug) layout(width, height int) {
	d.backend.Layout(width, height)
}

func (d *Debug) renderControl() {
	stepper := &d.game.stepper

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 260), imgui.CondOnce)
	if !imgui.BeginV("Simulation Control", nil, 0) {
		imgui.End()
		return
	}
	defer imgui.End()

	if stepper.Paused {
		if imgui.Button("Resume") {
			stepper.Resume()
		}
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")

		if elapsed, total := stepper.Progress(); total > 0 {
			imgui.ProgressBarV(float32(elapsed/total), imgui.NewVec2(-1, 0), fmt.Sprintf("%.1f/%.1fs", elapsed, total))
		}

		imgui.Separator()
		imgui.Text("Step Forward:")
		if imgui.Button("1 Tick") {
			stepper.Step(1)
		}
		imgui.SameLine()
		if imgui.Button("1 Second") {
			stepper.Advance(1)
		}
		imgui.SameLine()
		if imgui.Button("5 Seconds") {
			stepper.Advance(5)
		}
	} else {
		if imgui.Button("Pause") {
			stepper.Paused = true
		}
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	counters := d.game.pipeline.Counters()
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Bullets fired: %d (hit %d)", counters.BulletsFired, counters.BulletsHit))
	imgui.Text(fmt.Sprintf("Asteroids: %d spawned, %d destroyed", counters.AsteroidsSpawned, counters.AsteroidsDestroyed))
	imgui.Text(fmt.Sprintf("Despawned off screen: %d", counters.Despawned))
	imgui.Text(d.game.pipeline.FrameStats().String())
}

func (d *Debug) renderSystems() {
	imgui.SetNextWindowPosV(imgui.NewVec2(280, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 420), imgui.CondOnce)
	if !imgui.BeginV("System Performance", nil, 0) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !imgui.BeginTabBar("SystemTabs") {
		return
	}
	defer imgui.EndTabBar()

	if imgui.BeginTabItem("Table") {
		systemTable("Simulation", d.game.pipeline.Simulation().GetStats())
		systemTable("Render", d.game.pipeline.Render().GetStats())
		imgui.EndTabItem()
	}

	if imgui.BeginTabItem("Latency") {
		yMax := max(float64(d.latency.Max())*1.1, 0.1)
		if implot.BeginPlotV("System Latency", imgui.NewVec2(-1, -1), 0) {
			implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
			implot.SetupAxisLimitsV(implot.AxisY1, 0, yMax, implot.CondAlways)
			for _, name := range d.latency.Names() {
				samples := d.latency.Series(name)
				implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
			}
			implot.EndPlot()
		}
		imgui.EndTabItem()
	}
}

func systemTable(title string, stats *ecs.SchedulerStats) {
	imgui.Text(fmt.Sprintf("%s: %d systems, %d frames", title, stats.SystemCount, stats.Frames))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV(title+"Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("Name")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableSetupColumn("Min (ms)")
	imgui.TableSetupColumn("Max (ms)")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", float64(sys.MinDuration.Microseconds())/1000.0))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", float64(sys.MaxDuration.Microseconds())/1000.0))
	}
	imgui.EndTable()
}

// renderSettings edits a copy of the active settings. Apply validates the
// copy before handing it to the pipeline.
func (d *Debug) renderSettings() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 360), imgui.CondOnce)
	if !imgui.BeginV("Settings", nil, 0) {
		imgui.End()
		return
	}
	defer imgui.End()

	s := &d.draft
	floatInput("Player speed", &s.Player.MaxSpeed)
	floatInput("Bullet speed", &s.Bullet.Speed)
	floatInput("Fire delay", &s.Bullet.FireDelay)
	floatInput("Min lifetime", &s.MinLifetime)
	floatInput("Spawn delay min", &s.Asteroid.SpawnDelay.Min)
	floatInput("Spawn delay max", &s.Asteroid.SpawnDelay.Max)
	floatInput("Asteroid speed min", &s.Asteroid.Speed.Min)
	floatInput("Asteroid speed max", &s.Asteroid.Speed.Max)
	floatInput("Spin", &s.Asteroid.MaxAngularVelocity)

	if imgui.Button("Apply") {
		d.applyDraft()
	}
	imgui.SameLine()
	if imgui.Button("Revert") {
		d.draft = *d.game.pipeline.Settings()
		d.draftError = ""
	}
	if d.game.configPath != "" {
		imgui.SameLine()
		if imgui.Button("Save") {
			d.saveDraft()
		}
	}

	if d.draftError != "" {
		imgui.TextColored(imgui.NewVec4(1.0, 0.3, 0.3, 1.0), d.draftError)
	}
}

func (d *Debug) applyDraft() {
	if err := d.draft.Validate(); err != nil {
		d.draftError = err.Error()
		return
	}
	d.draftError = ""
	settings := d.draft
	d.game.pipeline.ApplySettings(&settings)
}

func (d *Debug) saveDraft() {
	if err := d.draft.Validate(); err != nil {
		d.draftError = err.Error()
		return
	}
	if err := d.draft.WriteYAML(d.game.configPath); err != nil {
		d.draftError = err.Error()
		d.game.logger.Warn("saving settings failed", "error", err)
		return
	}
	d.draftError = ""
	d.game.logger.Info("settings saved", slog.String("path", d.game.configPath))
}

func floatInput(name string, v *float64) {
	f := float32(*v)
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(100)
	if imgui.InputFloat("##"+name, &f) {
		*v = float64(f)
	}
}

// syncDraft replaces the edited copy after the settings changed elsewhere.
func (d *Debug) syncDraft(settings *config.Settings) {
	d.draft = *settings
	d.draftError = ""
}
