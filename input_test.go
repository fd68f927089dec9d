package skillmap

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{30, 20, true},
		{20, 15, true},
		{9.9, 15, false},
		{20, 20.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitPolygonWinding(t *testing.T) {
	cw := HitPolygon{Points: []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	ccw := HitPolygon{Points: []Vec2{{0, 0}, {0, 10}, {10, 10}, {10, 0}}}
	for name, p := range map[string]HitPolygon{"cw": cw, "ccw": ccw} {
		if !p.Contains(5, 5) {
			t.Errorf("%s: center not contained", name)
		}
		if p.Contains(11, 5) {
			t.Errorf("%s: outside point contained", name)
		}
	}
	if (HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}).Contains(0, 0) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestInputEventPos(t *testing.T) {
	ev := InputEvent{X: 3, Y: 4}
	if ev.Pos() != (Vec2{3, 4}) {
		t.Errorf("Pos = %+v", ev.Pos())
	}
}

func TestHitTest(t *testing.T) {
	m := newTestMap(t)
	tests := []struct {
		name string
		at   Vec2
		want string
	}{
		{"first cell", goCellCenter, "Go"},
		{"second cell", sqlCellCenter, "SQL"},
		{"island title", Vec2{400, 200}, ""},
		{"empty space", Vec2{50, 50}, ""},
		{"outside viewport", Vec2{900, 279}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.hitTest(tt.at.X, tt.at.Y)
			name := ""
			if got != nil {
				name = got.Item.Name
			}
			if name != tt.want {
				t.Errorf("hitTest(%v) = %q, want %q", tt.at, name, tt.want)
			}
		})
	}
}

func TestHitTestSkipsPlaceholderCells(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	m.SetDocument(mustParse(t, `{"Column": {"width": 1, "skills": {"gap": {"placeholder": true}}}}`))
	m.Layout(800, 600)
	m.step(1.0/60, nil)
	// Same grid position as the first cell of columnDocJSON.
	if got := m.hitTest(400, 279); got != nil {
		t.Errorf("hit placeholder cell %q", got.Name)
	}
}

func TestSecondPointerCannotStealPan(t *testing.T) {
	m := newTestMap(t)
	m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: 0, X: 50, Y: 50, Button: MouseButtonLeft})
	m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: 1, X: 60, Y: 60, Button: MouseButtonLeft})
	if s, ok := m.Viewport().Session(); !ok || s.PointerID != 0 {
		t.Fatalf("session = %+v, %v; want owned by pointer 0", s, ok)
	}

	m.Dispatch(InputEvent{Kind: EventPointerMove, PointerID: 1, X: 160, Y: 160})
	assertPan(t, m, 331, 156)

	m.Dispatch(InputEvent{Kind: EventPointerUp, PointerID: 1, X: 160, Y: 160, Button: MouseButtonLeft})
	if !m.Viewport().Panning() {
		t.Error("release of the other pointer ended the session")
	}
}

func TestPointerCancelEndsPan(t *testing.T) {
	m := newTestMap(t)
	m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: 2, X: 50, Y: 50, Button: MouseButtonLeft})
	m.Dispatch(InputEvent{Kind: EventPointerCancel, PointerID: 2})
	if m.Viewport().Panning() {
		t.Error("cancel did not end the session")
	}
	if m.pointers[2].down {
		t.Error("cancelled pointer still down")
	}
}

func TestMouseLeaveKeepsTouchPan(t *testing.T) {
	m := newTestMap(t)
	m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: 1, X: 50, Y: 50, Button: MouseButtonLeft})
	m.Dispatch(InputEvent{Kind: EventPointerLeave})
	if s, ok := m.Viewport().Session(); !ok || s.PointerID != 1 {
		t.Fatalf("session = %+v, %v; want owned by pointer 1", s, ok)
	}
	if !m.pointers[1].down {
		t.Error("leave reset the touch pointer")
	}
	m.Dispatch(InputEvent{Kind: EventPointerMove, PointerID: 1, X: 80, Y: 90})
	assertPan(t, m, 361, 196)
}

func TestMouseLeaveKeepsTouchPressOnModal(t *testing.T) {
	m := newTestMap(t)
	click(m, goCellCenter)
	m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: 1, X: 5, Y: 5, Button: MouseButtonLeft})
	m.Dispatch(InputEvent{Kind: EventPointerLeave})
	m.Dispatch(InputEvent{Kind: EventPointerUp, PointerID: 1, X: 5, Y: 5, Button: MouseButtonLeft})
	if m.Modal().IsOpen() {
		t.Error("touch tap on the backdrop did not close the modal after a mouse leave")
	}
}

func TestPointerDownFocus(t *testing.T) {
	m := newTestMap(t)
	m.Dispatch(InputEvent{Kind: EventPointerDown, X: sqlCellCenter.X, Y: sqlCellCenter.Y, Button: MouseButtonLeft})
	if f := m.Focus().Current(); f == nil || f.Item.Name != "SQL" {
		t.Errorf("focus = %v, want SQL", f)
	}
	m.Dispatch(InputEvent{Kind: EventPointerUp, X: 50, Y: 50, Button: MouseButtonLeft})
	if m.Modal().IsOpen() {
		t.Error("release away from the pressed cell opened the modal")
	}

	m.Dispatch(InputEvent{Kind: EventPointerDown, X: 50, Y: 50, Button: MouseButtonLeft})
	if m.Focus().Current() != nil {
		t.Error("press on empty space kept focus")
	}
}

func TestTouchSlots(t *testing.T) {
	m := NewMap(MapOptions{Logger: discardLogger()})
	a := m.touchSlot(7)
	b := m.touchSlot(9)
	if a != 1 || b != 2 {
		t.Errorf("slots = %d, %d; want 1, 2", a, b)
	}
	if m.touchSlot(7) != a {
		t.Error("known touch got a new slot")
	}
	for i := 0; i < maxPointers; i++ {
		m.touchSlot(ebiten.TouchID(100 + i))
	}
	if m.touchSlot(500) != -1 {
		t.Error("full table should return -1")
	}
}
