package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/nucleus/nucleus"
	"github.com/plus3/nucleus/renderer/headless"
)

// PerformanceStats shows frame times and scene counters.
type PerformanceStats struct {
	nucleus.ComponentBase

	history *FrameHistory
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	ps := &PerformanceStats{history: NewFrameHistory(historyFrames)}
	nucleus.InitComponent(ps, nil)
	return ps
}

func (ps *PerformanceStats) OnBeforeRender(dt float64) {
	ps.history.Push(float32(dt))

	ctx, err := ps.Context()
	if err != nil {
		return
	}

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entities: %d", len(ctx.Entities())))
	imgui.Text(fmt.Sprintf("Roots: %d", len(ctx.Roots())))
	imgui.Text(fmt.Sprintf("Systems: %d", len(ctx.Registrar().Systems())))

	avg := ps.history.Average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))

	if surface, ok := ctx.Surface().(*headless.Surface); ok {
		stats := surface.Stats()
		imgui.Text(fmt.Sprintf("Frames: %d  Nodes: %d  Subscribers: %d", stats.FrameCount, stats.NodeCount, stats.Subscribers))
		imgui.Text(fmt.Sprintf("Frame work: last %v  max %v", stats.LastDuration, stats.MaxDuration))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	samples := ps.history.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	if imgui.TreeNodeStr("Systems") {
		for _, s := range ctx.Registrar().Systems() {
			imgui.BulletText(fmt.Sprintf("%T -> %s", s, s.AsSystem().ComponentType()))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameHistory is a ring of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records one frame of dt seconds.
func (h *FrameHistory) Push(dt float32) {
	h.samples[h.index] = dt * 1000.0
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples {
		total += s
	}
	return total / float32(h.filled)
}

// Samples returns the underlying ring buffer.
func (h *FrameHistory) Samples() []float32 {
	return h.samples
}
