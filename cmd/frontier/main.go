package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chosenoffset.com/frontier/internal/entity"
	"chosenoffset.com/frontier/internal/game"
	"chosenoffset.com/frontier/internal/logger"
	ebitenrender "chosenoffset.com/frontier/internal/render/ebiten"
	"chosenoffset.com/frontier/internal/simulation"
)

// version, commit, date are injected at build time with -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath  string
		seed        string
		width       float64
		height      float64
		logLevel    string
		logFormat   string
		headless    bool
		ticks       uint64
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "frontier.json", "simulation config file (defaults are used if missing)")
	flag.StringVar(&seed, "seed", "", "world seed (overrides config)")
	flag.Float64Var(&width, "width", 0, "world width (overrides config)")
	flag.Float64Var(&height, "height", 0, "world height (overrides config)")
	flag.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flag.StringVar(&logFormat, "log-format", "", "log format: text or json")
	flag.BoolVar(&headless, "headless", false, "run the simulation without a window")
	flag.Uint64Var(&ticks, "ticks", 0, "stop a headless run after this many ticks (0 runs until interrupted)")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Frontier %s (%s) %s\n", version, commit, date)
		return
	}

	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}

	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	if logFormat == "" {
		logFormat = cfg.Log.Format
	}
	logger.Init(logLevel, logFormat)

	if seed != "" {
		cfg.World.Seed = seed
	}
	if width > 0 {
		cfg.World.Width = width
	}
	if height > 0 {
		cfg.World.Height = height
	}
	if err := cfg.Validate(); err != nil {
		logger.Log.WithError(err).Fatal("Invalid config")
	}

	g, err := game.New(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start game")
	}

	if headless {
		if err := runHeadless(g, ticks); err != nil {
			logger.Log.WithError(err).Fatal("Headless run failed")
		}
		return
	}

	// Initialize the renderer backend (ebiten)
	g.SetBackend(ebitenrender.NewRenderer(), ebitenrender.NewInputManager())
	engine := ebitenrender.NewEngine()
	g.Meter = engine

	// Set up the window
	engine.SetWindowSize(cfg.Camera.ViewportWidth, cfg.Camera.ViewportHeight)
	engine.SetWindowTitle("Frontier")
	engine.SetWindowResizable(true)
	engine.SetTickRate(cfg.Loop.TickRate)

	logger.Log.WithField("version", version).Info("Starting game")
	g.Loop.Start()
	if err := engine.RunGame(g); err != nil {
		logger.Log.WithError(err).Fatal("Game exited with error")
	}
	logger.Log.WithFields(g.Summary()).Info("Session ended")
}

func runHeadless(g *game.Game, ticks uint64) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g.Loop.SetTickLimit(ticks)
	interval := time.Duration(g.Loop.StepSize() * float64(time.Second))

	logger.Log.WithField("ticks", ticks).Info("Running headless")
	err := g.Loop.Run(ctx, interval, func() entity.Input { return entity.Input{} })
	logger.Log.WithFields(g.Summary()).Info("Session ended")
	if err == context.Canceled {
		return nil
	}
	return err
}
