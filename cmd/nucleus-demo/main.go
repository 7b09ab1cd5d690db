package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/nucleus/debugui"
	debugui_ebiten "github.com/plus3/nucleus/nucleus/debugui/ebiten"
	"github.com/plus3/nucleus/renderer/ebitenview"
	"github.com/plus3/nucleus/renderer/headless"
	"github.com/plus3/nucleus/scenefile"
	"go.uber.org/zap"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

//go:embed scene.yaml
var defaultScene []byte

func main() {
	scenePath := flag.String("scene", "", "YAML scene file; the built-in solar system is used when empty.")
	watch := flag.Bool("watch", false, "Rebuild the scene whenever the -scene file changes.")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error).")
	flag.Parse()

	logger, err := nucleus.NewLogger(*logLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logger configuration: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	backend := debugui_ebiten.NewImguiBackend("Nucleus Demo", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	manager := nucleus.NewManager(nucleus.WithLogger(logger))
	surface := headless.NewSurface()

	scene, err := loadScene(*scenePath)
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}
	current, err := scene.Build(manager, surface, scenefile.DefaultRegistry())
	if err != nil {
		logger.Fatal("failed to build scene", zap.Error(err))
	}
	if _, err := debugui.SpawnDebugUI(manager, surface); err != nil {
		logger.Fatal("failed to spawn debug ui", zap.Error(err))
	}

	game := ebitenview.NewGame(surface)
	game.Overlay = backend

	if *watch && *scenePath != "" {
		w, err := scenefile.Watch(*scenePath)
		if err != nil {
			logger.Fatal("failed to watch scene", zap.Error(err))
		}
		defer w.Close()
		r := &reloader{watcher: w, manager: manager, surface: surface, current: current, logger: logger}
		game.BeforeFrame = r.poll
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("game loop failed", zap.Error(err))
	}
	surface.Dispose()
}

// reloader swaps the built scene for the latest one seen by the watcher.
type reloader struct {
	watcher *scenefile.Watcher
	manager *nucleus.Manager
	surface *headless.Surface
	current *scenefile.Result
	logger  *zap.Logger
}

func (r *reloader) poll() error {
	select {
	case err, ok := <-r.watcher.Errors():
		if ok {
			r.logger.Warn("scene reload failed", zap.Error(err))
		}
	case scene, ok := <-r.watcher.Scenes():
		if !ok {
			return nil
		}
		reg := scenefile.DefaultRegistry()
		if err := scene.Validate(reg); err != nil {
			r.logger.Warn("keeping previous scene", zap.Error(err))
			return nil
		}
		r.current.Dispose()
		res, err := scene.Build(r.manager, r.surface, reg)
		if err != nil {
			return err
		}
		r.current = res
		r.logger.Info("scene reloaded", zap.Int("entities", len(res.Entities)))
	default:
	}
	return nil
}

func loadScene(path string) (*scenefile.Scene, error) {
	if path == "" {
		return scenefile.LoadYAML(bytes.NewReader(defaultScene))
	}
	return scenefile.LoadFile(path)
}
