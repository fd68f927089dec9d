package skillmap

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

	// DefaultKeyStep is the zoom step applied by the +/- keys.
	DefaultKeyStep = 0.1

	// wheelLineHeight converts ebiten's line-based wheel offsets into the
	// pixel deltas the wheel sensitivity is tuned for.
	wheelLineHeight = 100.0
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Input events ---

// InputEvent is a single input event fed to Map.Dispatch. Real input polled
// from ebiten and injected input are both converted to this form.
// Coordinates are screen pixels.
type InputEvent struct {
	Kind      EventType
	PointerID int
	X, Y      float64
	Button    MouseButton
	// DeltaY is the wheel delta in pixels; positive scrolls away from the viewer.
	DeltaY float64
	Key    ebiten.Key
	Mods   KeyModifiers
	// Width and Height carry the new viewport size for EventResize.
	Width, Height float64
}

// Pos returns the event position as a Vec2.
func (e InputEvent) Pos() Vec2 {
	return Vec2{X: e.X, Y: e.Y}
}

// --- Per-pointer state ---

type pointerState struct {
	down    bool
	button  MouseButton // button captured at press time
	hitNode *Node
	panning bool // this pointer owns the viewport's drag session
	lastX   float64
	lastY   float64
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Nodes without a HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape == nil {
		return false
	}
	return n.HitShape.Contains(lx, ly)
}

// hitTest returns the topmost selectable cell under the screen point, or nil.
func (m *Map) hitTest(sx, sy float64) *Node {
	if m.content == nil || !m.vp.Rect.Contains(sx, sy) {
		return nil
	}
	cx, cy := m.vp.ScreenToContent(sx, sy)
	var hit *Node
	m.content.Walk(func(n *Node) bool {
		if !n.Visible {
			return false
		}
		if n.Kind == NodeKindIsland && !n.WorldBounds().Contains(cx, cy) {
			return false
		}
		if n.Selectable() {
			lx, ly := n.WorldToLocal(cx, cy)
			if nodeContainsLocal(n, lx, ly) {
				hit = n
			}
		}
		return true
	})
	return hit
}

// --- Dispatch ---

// Dispatch routes one input event. While the modal is open every pointer and
// key event goes to the modal; otherwise pointer events drive panning and
// selection, the wheel zooms around the cursor, and keys zoom, move focus or
// open the focused cell. Dispatch never blocks and must be called from the
// game loop.
func (m *Map) Dispatch(ev InputEvent) {
	if ev.Kind == EventResize {
		m.resize(ev.Width, ev.Height)
		return
	}
	if m.modal.IsOpen() {
		m.dispatchModal(ev)
		return
	}

	switch ev.Kind {
	case EventPointerDown:
		m.pointerDown(ev)
	case EventPointerMove:
		m.pointerMove(ev)
	case EventPointerUp:
		m.pointerUp(ev)
	case EventPointerCancel:
		m.pointerCancel(ev.PointerID)
	case EventPointerLeave:
		m.pointerLeave()
	case EventWheel:
		if m.vp.Rect.Contains(ev.X, ev.Y) {
			m.vp.ZoomWheel(ev.Pos(), ev.DeltaY)
		}
	case EventKeyPress:
		m.keyPress(ev)
	}
}

func (m *Map) pointer(id int) *pointerState {
	if id < 0 || id >= maxPointers {
		return nil
	}
	return &m.pointers[id]
}

func (m *Map) pointerDown(ev InputEvent) {
	ps := m.pointer(ev.PointerID)
	if ps == nil || ps.down {
		return
	}
	target := m.hitTest(ev.X, ev.Y)
	*ps = pointerState{
		down:    true,
		button:  ev.Button,
		hitNode: target,
		lastX:   ev.X,
		lastY:   ev.Y,
	}
	if target != nil {
		m.focus.Set(target)
	} else {
		m.focus.Clear()
	}
	if ev.Button == MouseButtonLeft && m.vp.Rect.Contains(ev.X, ev.Y) {
		ps.panning = m.vp.BeginPan(ev.PointerID, ev.Pos(), target)
	}
}

func (m *Map) pointerMove(ev InputEvent) {
	if ev.PointerID == 0 {
		m.hover = m.hitTest(ev.X, ev.Y)
	}
	ps := m.pointer(ev.PointerID)
	if ps == nil || !ps.down {
		return
	}
	ps.lastX, ps.lastY = ev.X, ev.Y
	if ps.panning {
		m.vp.UpdatePan(ev.PointerID, ev.Pos())
	}
}

func (m *Map) pointerUp(ev InputEvent) {
	ps := m.pointer(ev.PointerID)
	if ps == nil || !ps.down || ps.button != ev.Button {
		return
	}
	m.vp.EndPanPointer(ev.PointerID)
	hit := ps.hitNode
	clicked := !ps.panning && ps.button == MouseButtonLeft
	*ps = pointerState{lastX: ev.X, lastY: ev.Y}

	if clicked && hit.Selectable() && m.hitTest(ev.X, ev.Y) == hit {
		m.openCell(hit)
	}
}

func (m *Map) pointerCancel(id int) {
	m.vp.EndPanPointer(id)
	if ps := m.pointer(id); ps != nil {
		*ps = pointerState{lastX: ps.lastX, lastY: ps.lastY}
	}
}

// pointerLeave handles the mouse leaving the viewport. Touch pointers are
// not affected.
func (m *Map) pointerLeave() {
	m.vp.EndPanPointer(0)
	m.hover = nil
	m.pointers[0] = pointerState{}
}

// resetPointers abandons every in-flight press. Used when the modal takes
// over input.
func (m *Map) resetPointers() {
	m.vp.EndPan()
	m.hover = nil
	for i := range m.pointers {
		ps := &m.pointers[i]
		*ps = pointerState{lastX: ps.lastX, lastY: ps.lastY}
	}
}

func (m *Map) keyPress(ev InputEvent) {
	switch ev.Key {
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		m.vp.ZoomByStep(m.keyStep)
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		m.vp.ZoomByStep(-m.keyStep)
	case ebiten.KeyTab:
		var n *Node
		if ev.Mods&ModShift != 0 {
			n = m.focus.Prev()
		} else {
			n = m.focus.Next()
		}
		if n != nil {
			m.pendingFocusCenter = true
		}
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace:
		if n := m.focus.Current(); n.Selectable() {
			m.openCell(n)
		}
	}
}

func (m *Map) dispatchModal(ev InputEvent) {
	switch ev.Kind {
	case EventPointerDown:
		if ev.Button == MouseButtonLeft {
			m.modal.press(ev.PointerID, ev.X, ev.Y)
		}
	case EventPointerUp:
		if m.modal.release(ev.PointerID, ev.X, ev.Y) {
			m.closeModal()
		}
	case EventPointerCancel:
		m.modal.cancelPress(ev.PointerID)
	case EventPointerLeave:
		m.modal.cancelPress(0)
	case EventKeyPress:
		switch ev.Key {
		case ebiten.KeyEscape, ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace:
			m.closeModal()
		case ebiten.KeyTab:
			m.modal.MoveFocus(ev.Mods&ModShift != 0)
		}
	}
	// Wheel and move events are swallowed while the overlay is up.
}

// --- Polling ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// pollInput converts this frame's ebiten input state into events.
func (m *Map) pollInput() {
	mods := readModifiers()
	m.pollMouse(mods)
	m.pollTouches(mods)

	m.keyBuf = inpututil.AppendJustPressedKeys(m.keyBuf[:0])
	for _, k := range m.keyBuf {
		m.Dispatch(InputEvent{Kind: EventKeyPress, Key: k, Mods: mods})
	}
}

func (m *Map) pollMouse(mods KeyModifiers) {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	ps := &m.pointers[0]

	inside := m.vp.Rect.Contains(x, y)
	if !inside && m.cursorInside {
		m.Dispatch(InputEvent{Kind: EventPointerLeave, X: x, Y: y, Mods: mods})
	}
	m.cursorInside = inside

	if x != ps.lastX || y != ps.lastY {
		m.Dispatch(InputEvent{Kind: EventPointerMove, X: x, Y: y, Mods: mods})
		ps.lastX, ps.lastY = x, y
	}

	for _, b := range [...]struct {
		eb ebiten.MouseButton
		mb MouseButton
	}{
		{ebiten.MouseButtonLeft, MouseButtonLeft},
		{ebiten.MouseButtonRight, MouseButtonRight},
		{ebiten.MouseButtonMiddle, MouseButtonMiddle},
	} {
		if inpututil.IsMouseButtonJustPressed(b.eb) && inside {
			m.Dispatch(InputEvent{Kind: EventPointerDown, X: x, Y: y, Button: b.mb, Mods: mods})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			m.Dispatch(InputEvent{Kind: EventPointerUp, X: x, Y: y, Button: b.mb, Mods: mods})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 && inside {
		// ebiten reports positive wheel-up; DOM-style deltas are positive
		// when scrolling away from the viewer.
		m.Dispatch(InputEvent{Kind: EventWheel, X: x, Y: y, DeltaY: -wy * wheelLineHeight, Mods: mods})
	}
}

// pollTouches maps touches to pointer slots 1-9.
func (m *Map) pollTouches(mods KeyModifiers) {
	m.touchIDs = ebiten.AppendTouchIDs(m.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range m.touchIDs {
		slot := m.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		x, y := float64(tx), float64(ty)
		ps := &m.pointers[slot]
		if !ps.down {
			m.Dispatch(InputEvent{Kind: EventPointerDown, PointerID: slot, X: x, Y: y, Button: MouseButtonLeft, Mods: mods})
		} else if x != ps.lastX || y != ps.lastY {
			m.Dispatch(InputEvent{Kind: EventPointerMove, PointerID: slot, X: x, Y: y, Mods: mods})
		}
	}

	for i := 1; i < maxPointers; i++ {
		if m.touchUsed[i] && !active[i] {
			ps := &m.pointers[i]
			if ps.down {
				m.Dispatch(InputEvent{Kind: EventPointerUp, PointerID: i, X: ps.lastX, Y: ps.lastY, Button: MouseButtonLeft, Mods: mods})
			}
			m.touchUsed[i] = false
			m.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (m *Map) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if m.touchUsed[i] && m.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !m.touchUsed[i] {
			m.touchUsed[i] = true
			m.touchMap[i] = tid
			return i
		}
	}
	return -1
}
