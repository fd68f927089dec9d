package skillmap

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w
	fn()
	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

func TestDebugModeDisposedParentPanics(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDebugMode(true)
	defer m.SetDebugMode(false)

	parent := NewContainer("parent")
	parent.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on AddChild to a disposed parent")
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
			t.Errorf("panic message should mention 'disposed', got: %s", msg)
		}
	}()
	parent.AddChild(NewContainer("child"))
}

func TestReleaseModeDisposedNodeNoPanic(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDebugMode(false)

	child := NewContainer("child")
	child.Dispose()
	NewContainer("parent").AddChild(child)
}

func TestDebugModeTreeDepthWarning(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDebugMode(true)
	defer m.SetDebugMode(false)

	out := captureStderr(t, func() {
		current := NewContainer("root")
		for i := 0; i < debugMaxTreeDepth+5; i++ {
			child := NewContainer(fmt.Sprintf("depth_%d", i))
			current.AddChild(child)
			current = child
		}
	})
	if !strings.Contains(out, "warning: tree depth") {
		t.Errorf("expected tree depth warning, got: %q", out)
	}
}

func TestDebugModeChildCountWarning(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDebugMode(true)
	defer m.SetDebugMode(false)

	out := captureStderr(t, func() {
		parent := NewContainer("wide")
		for i := 0; i <= debugMaxChildCount; i++ {
			parent.AddChild(NewContainer("c"))
		}
	})
	if !strings.Contains(out, "has 1001 children") {
		t.Errorf("expected child count warning, got: %q", out)
	}
}

func TestDebugLogOnlyInDebugMode(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	stats := debugStats{islandsDrawn: 3, islandsCull: 1, cellsDrawn: 12}

	if out := captureStderr(t, func() { m.debugLog(stats) }); out != "" {
		t.Errorf("debugLog wrote %q with debug off", out)
	}

	m.SetDebugMode(true)
	defer m.SetDebugMode(false)
	out := captureStderr(t, func() { m.debugLog(stats) })
	if !strings.Contains(out, "islands: 3 (culled 1)") || !strings.Contains(out, "cells: 12") {
		t.Errorf("debugLog output = %q", out)
	}
}

func TestFPSCounterRefreshInterval(t *testing.T) {
	f := newFPSCounter()
	if !f.update(0.016) {
		t.Error("first update should redraw")
	}
	if f.update(0.2) {
		t.Error("redraw before the interval elapsed")
	}
	if !f.update(0.4) {
		t.Error("no redraw after the interval elapsed")
	}
}
