package austere

import "time"

// FrameStats holds the per-frame counters the Renderer collects. They are
// reset by PrepareFrame.
type FrameStats struct {
	Submitted          int // Submit calls with a mesh and shader
	Culled             int // submissions rejected by the frustum test
	OpaqueBatches      int
	TransparentBatches int
	DrawCalls          int // instances drawn, plus one for the skybox
	PrepareTime        time.Duration
	SortTime           time.Duration
	RenderTime         time.Duration
}

// globalDebug enables per-frame stats logging and scene graph sanity
// warnings.
var globalDebug bool

// SetDebugMode turns debug checks and per-frame stats logging on or off.
// Output goes to the package logger at debug and warn level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugLog reports the frame's stats at debug level.
func (r *Renderer) debugLog() {
	if !globalDebug {
		return
	}
	s := r.stats
	scoped("Renderer", "RenderFrame").Debug("frame",
		"submitted", s.Submitted,
		"culled", s.Culled,
		"opaque_batches", s.OpaqueBatches,
		"transparent_batches", s.TransparentBatches,
		"draw_calls", s.DrawCalls,
		"prepare", s.PrepareTime,
		"sort", s.SortTime,
		"render", s.RenderTime,
	)
}

// debugMaxTreeDepth is the node depth past which AddChild warns in debug
// mode.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		scoped(n.scope(), "AddChild").Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugMaxChildCount is the child count past which AddChild warns in debug
// mode.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		scoped(n.scope(), "AddChild").Warn("child count exceeds threshold",
			"children", len(n.children), "threshold", debugMaxChildCount)
	}
}
