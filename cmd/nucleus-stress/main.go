package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/scenefile"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities per surface when no scene is given.")
	surfaces := flag.Int("surfaces", 1, "Number of surfaces driven concurrently, one goroutine each.")
	churn := flag.Int("churn", 50, "Entities disposed and recreated per frame.")
	scenePath := flag.String("scene", "", "Optional YAML scene file to build instead of random entities.")
	profileMode := flag.String("profile", "", "Write a profile to the working directory (cpu, mem).")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	devLog := flag.Bool("dev-log", false, "Use the human readable development logger.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := nucleus.NewLogger(*logLevel, *devLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logger configuration: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		logger.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	var scene *scenefile.Scene
	if *scenePath != "" {
		if scene, err = scenefile.LoadFile(*scenePath); err != nil {
			logger.Fatal("failed to load scene", zap.Error(err))
		}
		if err := scene.Validate(scenefile.DefaultRegistry()); err != nil {
			logger.Fatal("invalid scene", zap.Error(err))
		}
	}

	logger.Info("starting nucleus stress test", zap.Int("surfaces", *surfaces))

	manager := nucleus.NewManager(nucleus.WithLogger(logger))
	cfg := RunConfig{
		Duration: *duration,
		Entities: *entityCount,
		Churn:    *churn,
		Scene:    scene,
	}

	report := &Report{
		Duration:       *duration,
		Churn:          *churn,
		Scene:          *scenePath,
		GCPauseMetrics: *gcPauseMetrics,
		Surfaces:       make([]SurfaceResult, *surfaces),
	}

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()

	// Every surface runs on its own goroutine; they share only the manager.
	g, ctx := errgroup.WithContext(context.Background())
	for i := range *surfaces {
		g.Go(func() error {
			res, err := RunSurface(ctx, manager, cfg, uint64(i))
			if err != nil {
				return fmt.Errorf("surface %d: %w", i, err)
			}
			report.Surfaces[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal("stress run failed", zap.Error(err))
	}

	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.LeakedContexts = len(manager.Contexts())

	logger.Info("simulation finished")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
