package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dusk/clock"
	"github.com/pthm-cable/dusk/config"
	"github.com/pthm-cable/dusk/engine"
	"github.com/pthm-cable/dusk/motion"
	"github.com/pthm-cable/dusk/scene"
	"github.com/pthm-cable/dusk/telemetry"
	"github.com/pthm-cable/dusk/visitor"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics on a simulated clock")
	duration := flag.Duration("duration", 0, "Stop after this much time (0 = until window closes; headless default 3m)")
	step := flag.Duration("step", time.Second/60, "Headless frame interval")
	clickEvery := flag.Duration("click-every", 0, "Headless synthetic click interval (0 = none)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	reducedMotion := flag.Bool("reduced-motion", false, "Start with reduced motion")
	visitorFile := flag.String("visitor-file", "", "Visitor count file (overrides config)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}
	if *visitorFile != "" {
		cfg.Visitor.File = *visitorFile
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	out, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Warn("telemetry output disabled", "error", err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			slog.Warn("closing telemetry output", "error", err)
		}
	}()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("writing config snapshot", "error", err)
	}

	var clk clock.Clock = clock.Real{}
	var mock *clock.Mock
	if *headless {
		mock = clock.NewMock(time.Now())
		clk = mock
	}

	eng, err := engine.New(cfg, clk, rng)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	eng.SetRecorder(telemetry.NewRecorder(out, cfg.Telemetry.LogTicks, cfg.Telemetry.LogSummary))
	eng.SetVisitors(visitor.NewChain(visitor.FileCounter{Path: cfg.Visitor.File}).Visit())
	eng.Motion().Set(*reducedMotion || motion.Detect(cfg.Motion.EnvVars, cfg.Motion.Reduced))
	eng.Start()
	defer eng.Close()

	slog.Info("starting backdrop",
		"seed", rngSeed,
		"headless", *headless,
		"reduced_motion", eng.Motion().Reduced(),
		"output_dir", out.Dir(),
	)

	if *headless {
		d := *duration
		if d <= 0 {
			d = time.Duration(cfg.Tracker.CapSeconds) * time.Second
		}
		scene.RunHeadless(eng, mock, rng, scene.HeadlessOptions{
			Duration:   d,
			Step:       *step,
			ClickEvery: *clickEvery,
			Width:      float64(cfg.Screen.Width),
			Height:     float64(cfg.Screen.Height),
		})
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s := scene.New(cfg, eng, clk)
	defer s.Unload()

	start := clk.Now()
	for !rl.WindowShouldClose() {
		s.Update()
		s.Draw()

		if *duration > 0 && clk.Now().Sub(start) >= *duration {
			break
		}
	}
}
