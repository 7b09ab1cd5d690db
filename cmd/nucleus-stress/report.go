package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Churn    int
	Scene    string

	// Results
	TotalTime      time.Duration
	Surfaces       []SurfaceResult
	LeakedContexts int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Nucleus Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Surfaces:** {{len .Surfaces}}
{{- if .Scene}}
- **Scene:** {{.Scene}}
{{- else}}
- **Churn per Frame:** {{.Churn}}
{{- end}}
- **Total Test Time:** {{.TotalTime}}
- **Contexts left after surface dispose:** {{.LeakedContexts}}
{{range .Surfaces}}
## Surface {{.Index}}
- **Initial Entities:** {{.Entities}}
- **Systems:** {{.Systems}}
- **Total Frames:** {{.Surface.FrameCount}}
- **Frame Time (churn + render):**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
- **Render Time:**
  - **Avg:** {{.Surface.AvgDuration}}
  - **Max:** {{.Surface.MaxDuration}}
- **Live Nodes at End:** {{.Surface.NodeCount}}
- **Frame Subscribers at End:** {{.Surface.Subscribers}}
- **Lifecycle:** {{.Lifecycle.Created}} created, {{.Lifecycle.Disposed}} disposed, {{.Lifecycle.Mounted}} components mounted, {{.Lifecycle.Toggled}} toggles, {{.Lifecycle.PropUpdates}} props updates
{{end}}
## Memory Usage
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}} B
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Sys Memory:     {{mb .MemStatsStart.Sys}} MB (start) -> {{mb .MemStatsEnd.Sys}} MB (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

var funcs = template.FuncMap{
	"mb": func(v any) string {
		switch val := v.(type) {
		case uint64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		case int64:
			return fmt.Sprintf("%.2f", float64(val)/1024/1024)
		default:
			return "N/A"
		}
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"ns": func(ns uint64) string {
		return time.Duration(ns).String()
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(funcs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
