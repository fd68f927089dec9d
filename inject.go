package skillmap

import "github.com/hajimehoshi/ebiten/v2"

// Injected events use screen coordinates (matching what a screenshot shows)
// and go through Dispatch exactly like polled input. One event is consumed
// per frame; while the queue is non-empty real input is not polled.

// InjectPress queues a left-button press at the given screen coordinates.
func (m *Map) InjectPress(x, y float64) {
	m.injectQueue = append(m.injectQueue, InputEvent{
		Kind: EventPointerDown, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectMove queues a pointer move at the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (m *Map) InjectMove(x, y float64) {
	m.injectQueue = append(m.injectQueue, InputEvent{
		Kind: EventPointerMove, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (m *Map) InjectRelease(x, y float64) {
	m.injectQueue = append(m.injectQueue, InputEvent{
		Kind: EventPointerUp, X: x, Y: y, Button: MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (m *Map) InjectClick(x, y float64) {
	m.InjectPress(x, y)
	m.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (m *Map) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		m.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	m.InjectRelease(toX, toY)
}

// InjectWheel queues a wheel event at the given screen coordinates. deltaY
// follows the DOM convention: negative zooms in.
func (m *Map) InjectWheel(x, y, deltaY float64) {
	m.injectQueue = append(m.injectQueue, InputEvent{
		Kind: EventWheel, X: x, Y: y, DeltaY: deltaY,
	})
}

// InjectKey queues a key press with the given modifiers.
func (m *Map) InjectKey(key ebiten.Key, mods KeyModifiers) {
	m.injectQueue = append(m.injectQueue, InputEvent{
		Kind: EventKeyPress, Key: key, Mods: mods,
	})
}

// processInjectedInput pops one event from the inject queue and dispatches
// it. Returns true if an event was consumed (real input should be skipped).
func (m *Map) processInjectedInput() bool {
	if len(m.injectQueue) == 0 {
		return false
	}
	ev := m.injectQueue[0]
	copy(m.injectQueue, m.injectQueue[1:])
	m.injectQueue = m.injectQueue[:len(m.injectQueue)-1]

	if ev.Kind == EventPointerMove || ev.Kind == EventPointerUp {
		m.pointers[0].lastX, m.pointers[0].lastY = ev.X, ev.Y
	}
	m.Dispatch(ev)
	return true
}
