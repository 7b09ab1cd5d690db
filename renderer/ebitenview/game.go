// Package ebitenview shows a headless surface in an Ebiten window. The game
// loop drives the surface frames and draws every node as a flat marker.
package ebitenview

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/nucleus/renderer/headless"
)

// Overlay draws on top of the scene, usually an ImGui backend.
type Overlay interface {
	Frame(fn func())
	Overlay(screen *ebiten.Image)
	Resize(width, height int)
}

// Game implements ebiten.Game for one surface.
type Game struct {
	Surface *headless.Surface
	Camera  Camera
	Overlay Overlay

	// BeforeFrame runs on the game goroutine ahead of every rendered frame.
	BeforeFrame func() error
}

func NewGame(surface *headless.Surface) *Game {
	return &Game{
		Surface: surface,
		Camera:  Camera{Zoom: 4},
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.Surface.IsDisposed() {
		return ebiten.Termination
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.Camera.Zoom = max(0.5, g.Camera.Zoom+float32(dy)*0.25)
	}

	if g.BeforeFrame != nil {
		if err := g.BeforeFrame(); err != nil {
			return err
		}
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.Overlay != nil {
		g.Overlay.Frame(func() { g.Surface.Render(dt) })
	} else {
		g.Surface.Render(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{245, 245, 240, 255})

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, s := range Sprites(g.Surface, g.Camera, w, h) {
		c := color.RGBA{s.Color[0], s.Color[1], s.Color[2], 255}
		if s.Filled {
			vector.DrawFilledRect(screen, s.X-s.Size/2, s.Y-s.Size/2, s.Size, s.Size, c, false)
		} else {
			vector.DrawFilledCircle(screen, s.X, s.Y, s.Size/4, c, false)
		}
		ex, ey := s.HeadingEnd()
		vector.StrokeLine(screen, s.X, s.Y, ex, ey, 1, color.RGBA{90, 90, 90, 255}, false)
	}

	if g.Overlay != nil {
		g.Overlay.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Overlay != nil {
		g.Overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
