// Package scene runs the backdrop: the raylib window loop with pointer and
// keyboard input, and a headless loop driven by a mock clock.
package scene

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/clock"
	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/renderer"
	"github.com/pthm-cable/dusk/telemetry"
	"github.com/pthm-cable/dusk/ui"
)

// perfLogInterval is how often frame timing is logged at debug level.
const perfLogInterval = 30 * time.Second

// Scene is the windowed backdrop.
type Scene struct {
	cfg    *config.Config
	engine *engine.Engine
	clock  clock.Clock

	renderer *renderer.Renderer
	overlays *ui.OverlayRegistry
	panels   *ui.Renderer
	strip    *ui.ControlStrip
	perf     *telemetry.PerfCollector

	screenWidth  float32
	screenHeight float32

	pressing    bool // Pointer went down on the title
	frame       engine.Composition
	lastPerfLog time.Time
}

// New creates a scene around a started engine. The raylib window must exist.
func New(cfg *config.Config, eng *engine.Engine, clk clock.Clock) *Scene {
	overlays := ui.NewOverlayRegistry()
	return &Scene{
		cfg:          cfg,
		engine:       eng,
		clock:        clk,
		renderer:     renderer.New(),
		overlays:     overlays,
		panels:       ui.NewRenderer(),
		strip:        ui.NewControlStrip(overlays),
		perf:         telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		screenWidth:  float32(rl.GetScreenWidth()),
		screenHeight: float32(rl.GetScreenHeight()),
		lastPerfLog:  clk.Now(),
	}
}

// Update processes input, runs due timers and samples the next frame.
func (s *Scene) Update() {
	s.perf.StartFrame()

	s.perf.StartPhase(telemetry.PhaseSchedule)
	s.handleInput()
	now := s.clock.Now()
	s.engine.Advance(now)

	s.perf.StartPhase(telemetry.PhaseCompose)
	s.frame = s.engine.Frame(now, float64(s.screenWidth), float64(s.screenHeight))
}

// Draw renders the sampled frame and any enabled overlays.
func (s *Scene) Draw() {
	s.perf.StartPhase(telemetry.PhaseGrain)
	s.renderer.SyncTextures(s.frame)

	s.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	s.renderer.Draw(s.frame)
	s.drawOverlays()
	rl.EndDrawing()

	s.perf.EndFrame()
	s.maybeLogPerf()
}

func (s *Scene) drawOverlays() {
	w, h := int32(s.screenWidth), int32(s.screenHeight)
	for _, id := range s.overlays.EnabledOverlays() {
		switch id {
		case ui.OverlayState:
			s.panels.DrawPanelDescriptor(ui.StatePanel, ui.HUDData{
				Frame: s.frame,
				Phase: s.engine.Lights().Phase().String(),
				Press: s.engine.LongPress().Phase().String(),
			}, w, h)
		case ui.OverlayPerf:
			s.panels.DrawPanelDescriptor(ui.PerfPanel, s.perf.Stats(), w, h)
		case ui.OverlayControls:
			next := s.strip.Draw(ui.ControlState{
				ReducedMotion: s.engine.Motion().Reduced(),
				ShowState:     s.overlays.IsEnabled(ui.OverlayState),
				ShowPerf:      s.overlays.IsEnabled(ui.OverlayPerf),
			}, h)
			s.engine.Motion().Set(next.ReducedMotion)
			s.overlays.SetEnabled(ui.OverlayState, next.ShowState)
			s.overlays.SetEnabled(ui.OverlayPerf, next.ShowPerf)
		}
	}
}

func (s *Scene) maybeLogPerf() {
	now := s.clock.Now()
	if now.Sub(s.lastPerfLog) < perfLogInterval {
		return
	}
	s.lastPerfLog = now
	slog.Debug("frame timing", "perf", s.perf.Stats(), "grain_uploads", s.renderer.GrainUploads())
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	s.renderer.Unload()
}
