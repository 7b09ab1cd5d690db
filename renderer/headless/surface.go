// Package headless provides an in-memory renderer: a node tree with
// transforms and assets, and a frame loop driven by Render or Run. It renders
// nothing and is meant for tests, servers and tools.
package headless

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/plus3/nucleus/nucleus"
)

// FrameStats provides statistics about frame execution.
type FrameStats struct {
	FrameCount    int64
	Subscribers   int
	NodeCount     int
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

// Surface is an in-memory render surface.
type Surface struct {
	nextID nucleus.NodeID
	nodes  map[nucleus.NodeID]*Node
	roots  []*Node

	beforeRender observers[nucleus.FrameFunc]
	nodeDispose  observers[func(nucleus.Node, bool)]
	dispose      observers[func()]

	frameCount    int64
	minDuration   time.Duration
	maxDuration   time.Duration
	lastDuration  time.Duration
	totalDuration time.Duration

	disposing bool
	disposed  bool
}

var _ nucleus.Surface = (*Surface)(nil)

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{
		nodes:       make(map[nucleus.NodeID]*Node),
		minDuration: time.Duration(1<<63 - 1),
	}
}

// CreateNode creates a node under parent, which must be nil or a node of
// this surface.
func (s *Surface) CreateNode(name string, parent nucleus.Node) nucleus.Node {
	return s.NewNode(name, s.resolve(parent))
}

// NewNode is the typed form of CreateNode.
func (s *Surface) NewNode(name string, parent *Node) *Node {
	if s.disposed {
		panic("headless: CreateNode on a disposed surface")
	}
	s.nextID++
	n := &Node{
		id:      s.nextID,
		name:    name,
		surface: s,
		scaling: nucleus.Vector3{X: 1, Y: 1, Z: 1},
	}
	s.nodes[n.id] = n
	n.SetParent(parent)
	return n
}

func (s *Surface) resolve(parent nucleus.Node) *Node {
	if parent == nil {
		return nil
	}
	p, ok := parent.(*Node)
	if !ok || p.surface != s {
		panic(fmt.Sprintf("headless: parent %v does not belong to this surface", parent.ID()))
	}
	return p
}

// Node returns the live node with the given id.
func (s *Surface) Node(id nucleus.NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NodeCount returns the number of live nodes.
func (s *Surface) NodeCount() int {
	return len(s.nodes)
}

// Roots returns the nodes that have no parent.
func (s *Surface) Roots() []*Node {
	return slices.Clone(s.roots)
}

func (s *Surface) IsDisposed() bool {
	return s.disposed || s.disposing
}

func (s *Surface) OnBeforeRender(fn nucleus.FrameFunc) func() {
	return s.beforeRender.add(fn)
}

func (s *Surface) OnNodeDispose(fn func(nucleus.Node, bool)) func() {
	return s.nodeDispose.add(fn)
}

func (s *Surface) OnDispose(fn func()) func() {
	return s.dispose.add(fn)
}

// Render runs one frame: every before-render callback is invoked once with dt.
func (s *Surface) Render(dt float64) {
	if s.IsDisposed() {
		return
	}

	start := time.Now()
	s.beforeRender.each(func(fn nucleus.FrameFunc) {
		fn(dt)
	})
	duration := time.Since(start)

	s.frameCount++
	s.lastDuration = duration
	s.totalDuration += duration
	if duration < s.minDuration {
		s.minDuration = duration
	}
	if duration > s.maxDuration {
		s.maxDuration = duration
	}
}

// Run renders frames at the given interval until the context is cancelled or
// the surface is disposed.
func (s *Surface) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.IsDisposed() {
				return
			}
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Render(dt)
		}
	}
}

// Stats returns statistics about the frames rendered so far.
func (s *Surface) Stats() FrameStats {
	stats := FrameStats{
		FrameCount:    s.frameCount,
		Subscribers:   s.beforeRender.len(),
		NodeCount:     len(s.nodes),
		MaxDuration:   s.maxDuration,
		LastDuration:  s.lastDuration,
		TotalDuration: s.totalDuration,
	}
	if s.frameCount > 0 {
		stats.MinDuration = s.minDuration
		stats.AvgDuration = s.totalDuration / time.Duration(s.frameCount)
	}
	return stats
}

// Dispose notifies the dispose hooks and then disposes every remaining node.
func (s *Surface) Dispose() {
	if s.IsDisposed() {
		return
	}
	s.disposing = true

	s.dispose.each(func(fn func()) {
		fn()
	})
	for _, root := range slices.Clone(s.roots) {
		root.Dispose(true)
	}

	s.beforeRender.clear()
	s.nodeDispose.clear()
	s.dispose.clear()
	s.disposed = true
	s.disposing = false
}
