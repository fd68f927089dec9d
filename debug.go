package skillmap

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Map.debug is true.
type debugStats struct {
	contentTime  time.Duration
	overlayTime  time.Duration
	islandsDrawn int
	islandsCull  int
	cellsDrawn   int
	labelsDrawn  int
}

// debugLog prints timing and draw stats to stderr.
func (m *Map) debugLog(stats debugStats) {
	if !m.debug {
		return
	}
	t := m.vp.Transform()
	_, _ = fmt.Fprintf(os.Stderr,
		"[skillmap] content: %v | overlay: %v | total: %v\n",
		stats.contentTime, stats.overlayTime, stats.contentTime+stats.overlayTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[skillmap] islands: %d (culled %d) | cells: %d | labels: %d | scale: %.3f pan: %.1f,%.1f\n",
		stats.islandsDrawn, stats.islandsCull, stats.cellsDrawn, stats.labelsDrawn, t.Scale, t.PanX, t.PanY)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; in release mode callers
// skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("skillmap debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[skillmap] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[skillmap] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
