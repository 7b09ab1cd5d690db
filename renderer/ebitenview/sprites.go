package ebitenview

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/chewxy/math32"
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/renderer/headless"
)

// Camera maps world coordinates to the screen. The view is an oblique
// projection looking down the Z axis.
type Camera struct {
	X, Y float32
	Zoom float32
}

// Sprite is one node ready to be drawn.
type Sprite struct {
	X, Y    float32
	Size    float32
	Heading float32
	Depth   float32
	Filled  bool
	Color   [3]uint8
}

var palette = [][3]uint8{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{186, 225, 255},
	{255, 255, 186},
	{217, 186, 255},
}

// Project returns the screen position of a world point.
func Project(p nucleus.Vector3, cam Camera, screenW, screenH int) (float32, float32) {
	zoom := cam.Zoom
	if zoom == 0 {
		zoom = 1
	}
	x := (p.X - cam.X - p.Z*0.5) * zoom
	y := (p.Y - cam.Y + p.Z*0.5) * zoom
	return float32(screenW)/2 + x, float32(screenH)/2 - y
}

// Sprites collects every live node of surface, far nodes first.
func Sprites(surface *headless.Surface, cam Camera, screenW, screenH int) []Sprite {
	var out []Sprite
	var walk func(n *headless.Node, heading float32)
	walk = func(n *headless.Node, heading float32) {
		heading += n.Rotation().Y
		world := n.WorldPosition()
		x, y := Project(world, cam, screenW, screenH)
		scale := n.Scaling()
		size := math32.Max(math32.Abs(scale.X), math32.Abs(scale.Y)) * 8 * math32.Max(cam.Zoom, 0.1)

		out = append(out, Sprite{
			X:       x,
			Y:       y,
			Size:    size,
			Heading: heading,
			Depth:   world.Z,
			Filled:  n.Asset() != nil && !n.Asset().IsDisposed(),
			Color:   colorFor(n.Name()),
		})
		for _, child := range n.Children() {
			walk(child.(*headless.Node), heading)
		}
	}
	for _, root := range surface.Roots() {
		walk(root, 0)
	}

	slices.SortStableFunc(out, func(a, b Sprite) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})
	return out
}

// HeadingEnd returns the tip of the heading marker of s.
func (s Sprite) HeadingEnd() (float32, float32) {
	sin, cos := math32.Sincos(s.Heading)
	return s.X + cos*s.Size, s.Y - sin*s.Size
}

func colorFor(name string) [3]uint8 {
	return palette[xxhash.Sum64String(name)%uint64(len(palette))]
}
