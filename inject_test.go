package skillmap

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestInjectClickOpensModal(t *testing.T) {
	m := newTestMap(t)
	m.InjectClick(goCellCenter.X, goCellCenter.Y)
	if len(m.injectQueue) != 2 {
		t.Fatalf("queued %d events, want 2", len(m.injectQueue))
	}

	m.step(1.0/60, nil) // press
	if m.Modal().IsOpen() {
		t.Fatal("modal opened on press")
	}
	m.step(1.0/60, nil) // release
	if !m.Modal().IsOpen() {
		t.Fatal("modal did not open on release")
	}
	if len(m.injectQueue) != 0 {
		t.Errorf("queue not drained: %d", len(m.injectQueue))
	}
}

func TestInjectDragFrames(t *testing.T) {
	tests := []struct {
		frames, want int
	}{
		{0, 2},
		{2, 2},
		{5, 5},
	}
	for _, tt := range tests {
		m := NewMap(MapOptions{Logger: discardLogger()})
		m.InjectDrag(0, 0, 30, 30, tt.frames)
		if len(m.injectQueue) != tt.want {
			t.Errorf("InjectDrag(frames=%d) queued %d, want %d", tt.frames, len(m.injectQueue), tt.want)
		}
	}
}

func TestInjectDragPans(t *testing.T) {
	m := newTestMap(t)
	m.InjectDrag(50, 50, 110, 80, 4)
	for i := 0; i < 4; i++ {
		m.step(1.0/60, nil)
	}
	// The release is not a move, so the pan follows the last intermediate point.
	assertPan(t, m, 371, 176)
	if m.Viewport().Panning() {
		t.Error("session still active after injected release")
	}
}

func TestInjectWheelAndKey(t *testing.T) {
	m := newTestMap(t)
	m.InjectWheel(400, 300, 200)
	m.InjectKey(ebiten.KeyTab, 0)
	m.step(1.0/60, nil)
	if got := m.Viewport().Transform().Scale; got >= DefaultInitialScale {
		t.Errorf("scale after positive wheel delta = %v, want zoomed out", got)
	}
	if m.Focus().Current() != nil {
		t.Error("key consumed in the same frame as the wheel")
	}
	m.step(1.0/60, nil)
	if m.Focus().Current() == nil {
		t.Error("injected Tab did not move focus")
	}
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	if m.processInjectedInput() {
		t.Error("empty queue reported an event")
	}
	polled := false
	m.step(1.0/60, func() { polled = true })
	if !polled {
		t.Error("real input not polled with an empty queue")
	}
	m.InjectKey(ebiten.KeyTab, 0)
	polled = false
	m.step(1.0/60, func() { polled = true })
	if polled {
		t.Error("real input polled while injecting")
	}
}
