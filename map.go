package skillmap

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// LoadFailedNotice is the inline message shown when the startup load fails.
const LoadFailedNotice = "Failed to load skill data. See the log for details."

// MapOptions configures a Map. Zero values select the defaults.
type MapOptions struct {
	// Logger receives load failures and lifecycle messages. Defaults to slog.Default().
	Logger *slog.Logger
	// Loader fetches the startup document. Defaults to NewLoader().
	Loader *Loader
	// Layout controls the content geometry.
	Layout LayoutOptions
	// KeyStep is the zoom step applied by the +/- keys. Defaults to DefaultKeyStep.
	KeyStep float64
	// MinScale and MaxScale bound the zoom level. An inverted pair is swapped.
	MinScale, MaxScale float64
	// InitialScale is the scale before any interaction.
	InitialScale float64
	// WheelSensitivity is k in factor = exp(-wheelDeltaY * k).
	WheelSensitivity float64
	// ShowFPS draws an FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// Debug enables node-tree checks and per-frame stats on stderr.
	Debug bool
	// ScreenshotDir is where Screenshot writes PNG files. Defaults to "screenshots".
	ScreenshotDir string
}

// Map is the skill map scene. It owns the document, the content layer, the
// viewport controller, the modal and keyboard focus, and implements
// ebiten.Game. All state is mutated on the game loop; other goroutines hand
// documents over with Reload.
type Map struct {
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	log     *slog.Logger
	loader  *Loader
	layout  LayoutOptions
	keyStep float64

	doc     *Document
	content *Node
	vp      *Viewport
	modal   *Modal
	focus   *FocusRing
	notice  string
	reloads chan *Document

	// Deferred work applied at the start of the next Update.
	pendingCenter      bool
	pendingFocusCenter bool

	// Screen size reported by Layout.
	layoutW, layoutH float64
	screen           Rect

	// Input state
	pointers     [maxPointers]pointerState
	hover        *Node
	cursorInside bool
	cursor       ebiten.CursorShapeType
	keyBuf       []ebiten.Key
	touchIDs     []ebiten.TouchID
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool

	// Diagnostics
	debug           bool
	fps             *fpsCounter
	injectQueue     []InputEvent
	testRunner      *TestRunner
	screenshotQueue []string

	renderer renderer
}

// NewMap creates an empty map. Call Load or SetDocument to populate it.
func NewMap(opts MapOptions) *Map {
	m := &Map{
		ScreenshotDir: opts.ScreenshotDir,
		log:           opts.Logger,
		loader:        opts.Loader,
		layout:        opts.Layout.withDefaults(),
		keyStep:       opts.KeyStep,
		modal:         NewModal(),
		focus:         NewFocusRing(nil),
		reloads:       make(chan *Document, 1),
		cursor:        ebiten.CursorShapeDefault,
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if m.loader == nil {
		m.loader = NewLoader()
	}
	if m.keyStep == 0 {
		m.keyStep = DefaultKeyStep
	}
	if m.ScreenshotDir == "" {
		m.ScreenshotDir = "screenshots"
	}

	m.content = NewContainer("content")
	m.vp = NewViewport(Rect{}, m.content, nil)
	if opts.MinScale > 0 && finite(opts.MinScale) {
		m.vp.MinScale = opts.MinScale
	}
	if opts.MaxScale > 0 && finite(opts.MaxScale) {
		m.vp.MaxScale = opts.MaxScale
	}
	if m.vp.MinScale > m.vp.MaxScale {
		m.vp.MinScale, m.vp.MaxScale = m.vp.MaxScale, m.vp.MinScale
	}
	if opts.WheelSensitivity > 0 {
		m.vp.WheelSensitivity = opts.WheelSensitivity
	}
	initial := DefaultInitialScale
	if opts.InitialScale > 0 {
		initial = opts.InitialScale
	}
	m.vp.SetTransform(Transform{Scale: initial})
	if opts.ShowFPS {
		m.fps = newFPSCounter()
	}
	m.SetDebugMode(opts.Debug)
	return m
}

// --- Data ---

// Load fetches the document at source and builds the map from it. On failure
// the map stays empty, the error is logged, and the inline notice is shown.
// There is no retry.
func (m *Map) Load(ctx context.Context, source string) error {
	doc, err := m.loader.Load(ctx, source)
	if err != nil {
		m.notice = LoadFailedNotice
		m.log.Error("load skill data", "source", source, "err", err)
		return err
	}
	m.SetDocument(doc)
	m.log.Info("skill data loaded", "source", source,
		"islands", len(doc.Islands), "skills", doc.SkillCount())
	return nil
}

// SetDocument rebuilds the content layer from doc. The first document
// schedules centering for the next frame; later documents keep the current
// transform. Focus and an open modal follow their item into the new content
// when it still exists.
func (m *Map) SetDocument(doc *Document) {
	first := m.doc == nil
	var focused ItemID
	hadFocus := false
	if n := m.focus.Current(); n != nil {
		focused, hadFocus = n.Item, true
	}

	m.resetPointers()
	m.doc = doc
	old := m.content
	m.content = BuildContent(doc, m.layout)
	m.vp.SetContent(m.content)
	m.focus.Reset(m.content)
	if old != nil {
		old.Dispose()
	}
	m.notice = ""

	if hadFocus {
		for _, c := range SelectableCells(m.content) {
			if c.Item == focused {
				m.focus.Set(c)
				break
			}
		}
	}
	if m.modal.IsOpen() {
		if s, ok := doc.Lookup(m.modal.Item()); ok && !s.Placeholder {
			m.modal.skill = *s
		} else {
			m.closeModal()
		}
	}
	if first {
		m.pendingCenter = true
	}
}

// Reload hands a new document to the map from any goroutine. It is applied
// at the start of the next Update; only the newest pending document is kept.
func (m *Map) Reload(doc *Document) {
	if doc == nil {
		return
	}
	for {
		select {
		case m.reloads <- doc:
			return
		default:
			select {
			case <-m.reloads:
			default:
			}
		}
	}
}

func (m *Map) drainReloads() {
	select {
	case doc := <-m.reloads:
		m.SetDocument(doc)
		m.log.Info("skill data reloaded", "islands", len(doc.Islands), "skills", doc.SkillCount())
	default:
	}
}

// --- Accessors ---

// Viewport returns the viewport controller.
func (m *Map) Viewport() *Viewport { return m.vp }

// Modal returns the detail overlay.
func (m *Map) Modal() *Modal { return m.modal }

// Focus returns the keyboard focus ring.
func (m *Map) Focus() *FocusRing { return m.focus }

// Content returns the content layer.
func (m *Map) Content() *Node { return m.content }

// Document returns the current document, or nil before a successful load.
func (m *Map) Document() *Document { return m.doc }

// Notice returns the inline error notice, or "".
func (m *Map) Notice() string { return m.notice }

// Hovered returns the selectable cell under the mouse, or nil.
func (m *Map) Hovered() *Node { return m.hover }

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame stats are logged to stderr.
func (m *Map) SetDebugMode(enabled bool) {
	m.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Map debug flag so that node
// operations (which lack a Map pointer) can check it cheaply.
var globalDebug bool

// --- Selection ---

func (m *Map) openCell(n *Node) {
	if !n.Selectable() || n.Skill == nil {
		return
	}
	m.resetPointers()
	m.focus.Set(n)
	m.modal.Layout(m.screen)
	m.modal.Open(n.Item, *n.Skill, m.focus.Current())
	m.log.Debug("open skill", "item", n.Item.String())
}

func (m *Map) closeModal() {
	prev := m.modal.Close()
	if prev.AttachedTo(m.content) {
		m.focus.Set(prev)
	}
}

// --- ebiten.Game ---

// Update runs one frame: pending reloads and resizes, deferred centering,
// scripted or real input, and the modal fade.
func (m *Map) Update() error {
	m.step(frameDelta(), m.pollInput)
	m.updateCursor()
	return nil
}

// Layout records the window size; the viewport follows it on the next Update.
func (m *Map) Layout(outsideWidth, outsideHeight int) (int, int) {
	m.layoutW, m.layoutH = float64(outsideWidth), float64(outsideHeight)
	return outsideWidth, outsideHeight
}

func frameDelta() float32 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = 60
	}
	return float32(1.0 / float64(tps))
}

// step is Update without the cursor side effect; poll supplies real input and
// may be nil.
func (m *Map) step(dt float32, poll func()) {
	m.drainReloads()
	if m.layoutW > 0 && m.layoutH > 0 &&
		(m.layoutW != m.screen.Width || m.layoutH != m.screen.Height) {
		m.Dispatch(InputEvent{Kind: EventResize, Width: m.layoutW, Height: m.layoutH})
	}
	m.applyDeferred()

	if m.testRunner != nil {
		m.testRunner.step(m)
	}
	if !m.processInjectedInput() && poll != nil {
		poll()
	}
	m.modal.Update(dt)

	if m.vp.takeDirty() && m.debug {
		t := m.vp.Transform()
		m.log.Debug("view transform", "scale", t.Scale, "panX", t.PanX, "panY", t.PanY)
	}
}

func (m *Map) resize(w, h float64) {
	if w < 0 || h < 0 || !finite(w) || !finite(h) {
		return
	}
	m.screen = Rect{Width: w, Height: h}
	m.vp.Rect.X, m.vp.Rect.Y = 0, 0
	if m.vp.Resize(w, h) {
		m.log.Debug("viewport resized", "width", w, "height", h)
	}
	m.modal.Layout(m.screen)
}

// applyDeferred performs work scheduled by the previous frame: the initial
// centering once the size is known, and centering the island of a cell that
// received keyboard focus.
func (m *Map) applyDeferred() {
	if m.pendingCenter && !m.vp.Rect.Empty() {
		m.vp.CenterOnContent()
		m.pendingCenter = false
	}
	if m.pendingFocusCenter {
		m.pendingFocusCenter = false
		if m.modal.IsOpen() {
			return
		}
		if n := m.focus.Current(); n != nil {
			if is := n.Island(); is != nil {
				m.vp.CenterOnNode(is)
			}
		}
	}
}

// cursorShape returns the mouse cursor for the current state.
func (m *Map) cursorShape() ebiten.CursorShapeType {
	switch {
	case m.vp.Panning():
		return ebiten.CursorShapeMove
	case m.modal.IsOpen():
		ps := m.pointers[0]
		if m.modal.CloseButton().Contains(ps.lastX, ps.lastY) {
			return ebiten.CursorShapePointer
		}
		return ebiten.CursorShapeDefault
	case m.hover != nil:
		return ebiten.CursorShapePointer
	default:
		return ebiten.CursorShapeDefault
	}
}

func (m *Map) updateCursor() {
	if shape := m.cursorShape(); shape != m.cursor {
		ebiten.SetCursorShape(shape)
		m.cursor = shape
	}
}
