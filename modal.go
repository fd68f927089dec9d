package skillmap

import (
	"math"

	"github.com/tanema/gween/ease"
)

const (
	// modalFadeDuration is the show/hide tween length in seconds.
	modalFadeDuration = 0.2
	// modalClosedScale is the panel scale when fully hidden.
	modalClosedScale = 0.95

	modalMaxWidth   = 560.0
	modalMaxHeight  = 420.0
	modalMargin     = 24.0
	modalCloseSize  = 32.0
	modalCloseInset = 12.0
)

// Badge labels shown in the modal for flagged skills.
const (
	BadgeImportant = "Key skill"
	BadgeDynamic   = "High dynamics"
)

// ModalControlClose is the identifier of the built-in close button.
const ModalControlClose = "close"

// modalRegion identifies what a pointer landed on while the modal is open.
type modalRegion uint8

const (
	modalRegionNone modalRegion = iota
	modalRegionBackdrop
	modalRegionPanel
	modalRegionClose
)

// Modal is the detail overlay for a selected skill. It traps keyboard focus
// while open: focus starts on the panel content and Tab / Shift-Tab cycle
// through Controls, wrapping at both ends.
type Modal struct {
	// Controls are the focusable controls inside the panel, in Tab order.
	Controls []string

	// Alpha and PanelScale are the animated presentation values.
	Alpha      float64
	PanelScale float64

	item     ItemID
	skill    Skill
	open     bool
	focus    int // -1 = panel content, otherwise an index into Controls
	previous *Node
	tween    *TweenGroup

	panel       Rect
	closeButton Rect

	pressPointer int
	pressRegion  modalRegion
}

// NewModal creates a closed modal with a single close control.
func NewModal() *Modal {
	return &Modal{
		Controls:   []string{ModalControlClose},
		PanelScale: modalClosedScale,
		focus:      -1,
	}
}

// Open shows the overlay for the given item and remembers previous so focus
// can be restored on close. Focus moves to the panel content.
func (m *Modal) Open(id ItemID, skill Skill, previous *Node) {
	if !m.open {
		m.previous = previous
	}
	m.item = id
	m.skill = skill
	m.open = true
	m.focus = -1
	m.pressRegion = modalRegionNone
	m.animate(1, 1)
}

// Close hides the overlay and returns the node that was focused before it
// opened. Closing a closed modal returns nil.
func (m *Modal) Close() *Node {
	if !m.open {
		return nil
	}
	m.open = false
	m.pressRegion = modalRegionNone
	prev := m.previous
	m.previous = nil
	m.animate(0, modalClosedScale)
	return prev
}

// IsOpen reports whether the overlay is accepting input.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Visible reports whether the overlay should be drawn. A closing modal stays
// visible until its fade finishes.
func (m *Modal) Visible() bool {
	return m.open || m.Alpha > 0
}

// Item returns the identity of the displayed skill.
func (m *Modal) Item() ItemID {
	return m.item
}

// Skill returns the displayed skill.
func (m *Modal) Skill() Skill {
	return m.skill
}

// Badges returns the marker labels for the displayed skill.
func (m *Modal) Badges() []string {
	var out []string
	if m.skill.Important {
		out = append(out, BadgeImportant)
	}
	if m.skill.Dynamic {
		out = append(out, BadgeDynamic)
	}
	return out
}

// Focused returns the focused control, or "" when focus is on the panel
// content.
func (m *Modal) Focused() string {
	if m.focus < 0 || m.focus >= len(m.Controls) {
		return ""
	}
	return m.Controls[m.focus]
}

// MoveFocus cycles focus among the controls. From the panel content, Tab
// goes to the first control and Shift-Tab to the last.
func (m *Modal) MoveFocus(backward bool) {
	n := len(m.Controls)
	if !m.open || n == 0 {
		return
	}
	if backward {
		if m.focus <= 0 {
			m.focus = n - 1
		} else {
			m.focus--
		}
		return
	}
	if m.focus < 0 {
		m.focus = 0
	} else {
		m.focus = (m.focus + 1) % n
	}
}

// Update advances the fade.
func (m *Modal) Update(dt float32) {
	if m.tween != nil {
		m.tween.Update(dt)
		if m.tween.Done {
			m.tween = nil
		}
	}
}

// FinishAnimation jumps the fade to its end state.
func (m *Modal) FinishAnimation() {
	if m.tween != nil {
		m.tween.Finish()
		m.tween = nil
	}
}

func (m *Modal) animate(alpha, scale float64) {
	m.tween = newTweenGroup(modalFadeDuration, ease.OutQuad,
		tweenTarget{field: &m.Alpha, to: alpha},
		tweenTarget{field: &m.PanelScale, to: scale},
	)
}

// --- Geometry & pointer handling ---

// Layout positions the panel centered in a screen of the given size.
func (m *Modal) Layout(screen Rect) {
	w := math.Min(modalMaxWidth, screen.Width-2*modalMargin)
	h := math.Min(modalMaxHeight, screen.Height-2*modalMargin)
	w, h = math.Max(w, 0), math.Max(h, 0)
	c := screen.Center()
	m.panel = Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
	m.closeButton = Rect{
		X:      m.panel.X + m.panel.Width - modalCloseInset - modalCloseSize,
		Y:      m.panel.Y + modalCloseInset,
		Width:  modalCloseSize,
		Height: modalCloseSize,
	}
}

// Panel returns the panel rectangle in screen coordinates.
func (m *Modal) Panel() Rect {
	return m.panel
}

// CloseButton returns the close button rectangle in screen coordinates.
func (m *Modal) CloseButton() Rect {
	return m.closeButton
}

func (m *Modal) regionAt(x, y float64) modalRegion {
	switch {
	case m.closeButton.Contains(x, y):
		return modalRegionClose
	case m.panel.Contains(x, y):
		return modalRegionPanel
	default:
		return modalRegionBackdrop
	}
}

func (m *Modal) press(pointerID int, x, y float64) {
	m.pressPointer = pointerID
	m.pressRegion = m.regionAt(x, y)
}

// release reports whether a press-release pair landed on the backdrop or the
// close button, which closes the modal.
func (m *Modal) release(pointerID int, x, y float64) bool {
	if pointerID != m.pressPointer || m.pressRegion == modalRegionNone {
		return false
	}
	r := m.pressRegion
	m.pressRegion = modalRegionNone
	return r == m.regionAt(x, y) && (r == modalRegionBackdrop || r == modalRegionClose)
}

// cancelPress drops the pending press if pointerID owns it.
func (m *Modal) cancelPress(pointerID int) {
	if pointerID == m.pressPointer {
		m.pressRegion = modalRegionNone
	}
}
