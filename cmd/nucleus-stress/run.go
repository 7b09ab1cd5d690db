package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/renderer/headless"
	"github.com/plus3/nucleus/scenefile"
	"go.uber.org/zap"
)

// RunConfig describes the work done on each surface.
type RunConfig struct {
	Duration time.Duration
	Entities int
	Churn    int
	Scene    *scenefile.Scene
}

// SurfaceResult is the outcome of one surface run.
type SurfaceResult struct {
	Index     int
	Entities  int
	Systems   int
	FrameTime Stats
	Surface   headless.FrameStats
	Lifecycle Counters
}

// RunSurface populates a fresh surface, renders frames until the duration
// elapses or ctx is cancelled and then disposes the surface.
func RunSurface(ctx context.Context, manager *nucleus.Manager, cfg RunConfig, seed uint64) (SurfaceResult, error) {
	surface := headless.NewSurface()
	defer surface.Dispose()

	surfaceCtx, err := manager.ContextFor(surface)
	if err != nil {
		return SurfaceResult{}, err
	}
	logger := surfaceCtx.Logger().With(zap.Uint64("seed", seed))

	scene := &Scene{Manager: manager, Surface: surface, Rand: rand.New(rand.NewPCG(seed, seed+1))}
	if cfg.Scene != nil {
		if _, err := cfg.Scene.Build(manager, surface, scenefile.DefaultRegistry()); err != nil {
			return SurfaceResult{}, err
		}
	} else if err := scene.Populate(cfg.Entities); err != nil {
		return SurfaceResult{}, err
	}

	res := SurfaceResult{
		Index:    int(seed),
		Entities: len(surfaceCtx.Entities()),
		Systems:  len(surfaceCtx.Registrar().Systems()),
		FrameTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	logger.Info("population complete", zap.Int("entities", res.Entities), zap.Int("nodes", surface.NodeCount()))

	runCtx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-runCtx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			frameStart := time.Now()
			if cfg.Scene == nil {
				if err := scene.Churn(cfg.Churn); err != nil {
					return res, err
				}
			}
			surface.Render(deltaTime.Seconds())
			res.FrameTime.Samples = append(res.FrameTime.Samples, time.Since(frameStart))
		}
	}

	res.Surface = surface.Stats()
	res.Lifecycle = scene.Counters
	res.FrameTime.Finalize()
	res.FrameTime.Samples = nil
	return res, nil
}
