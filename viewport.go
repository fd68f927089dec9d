package skillmap

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultWheelSensitivity maps wheel deltas to zoom factors:
// factor = exp(-deltaY * DefaultWheelSensitivity).
const DefaultWheelSensitivity = 0.0015

// panSession is the state of an active pointer drag. The anchor stores
// (pointer position - pan) at drag start so that pan = pointer - anchor.
type panSession struct {
	pointerID int
	anchorX   float64
	anchorY   float64
}

// PanSession is a read-only snapshot of the active drag session.
type PanSession struct {
	PointerID int
	AnchorX   float64
	AnchorY   float64
}

// Viewport owns the view transform over the content layer and implements
// panning, zooming and centering. Every mutator keeps Scale within
// [MinScale, MaxScale]; panning and centering never change the scale.
type Viewport struct {
	// Rect is the screen-space rectangle the content is drawn into.
	Rect Rect
	// MinScale and MaxScale bound the zoom level.
	MinScale, MaxScale float64
	// WheelSensitivity is k in factor = exp(-wheelDeltaY * k).
	WheelSensitivity float64

	t       Transform
	content *Node
	measure Measurer
	session *panSession
	dirty   bool
}

// NewViewport creates a viewport over the given content layer. A nil
// measurer falls back to NodeMeasurer.
func NewViewport(rect Rect, content *Node, measure Measurer) *Viewport {
	if measure == nil {
		measure = NodeMeasurer
	}
	return &Viewport{
		Rect:             rect,
		MinScale:         DefaultMinScale,
		MaxScale:         DefaultMaxScale,
		WheelSensitivity: DefaultWheelSensitivity,
		t:                Transform{Scale: DefaultInitialScale},
		content:          content,
		measure:          measure,
		dirty:            true,
	}
}

// Transform returns the current view transform.
func (v *Viewport) Transform() Transform {
	return v.t
}

// SetTransform replaces the transform, clamping the scale.
func (v *Viewport) SetTransform(t Transform) {
	if !finite(t.Scale) || !finite(t.PanX) || !finite(t.PanY) || t.Scale <= 0 {
		return
	}
	t.Scale = v.clampScale(t.Scale)
	v.t = t
	v.dirty = true
}

// SetContent replaces the content layer used for centering.
func (v *Viewport) SetContent(content *Node) {
	v.content = content
}

// Content returns the content layer.
func (v *Viewport) Content() *Node {
	return v.content
}

// Panning reports whether a drag session is active (used for cursor feedback).
func (v *Viewport) Panning() bool {
	return v.session != nil
}

// Session returns the active drag session, if any.
func (v *Viewport) Session() (PanSession, bool) {
	if v.session == nil {
		return PanSession{}, false
	}
	return PanSession{
		PointerID: v.session.pointerID,
		AnchorX:   v.session.anchorX,
		AnchorY:   v.session.anchorY,
	}, true
}

// --- Panning ---

// BeginPan starts a drag session for pointerID at screen position pos.
// It refuses (returning false) when a session is already active or when the
// pointer landed on a selectable cell.
func (v *Viewport) BeginPan(pointerID int, pos Vec2, target *Node) bool {
	if v.session != nil {
		return false
	}
	if target.Selectable() {
		return false
	}
	v.session = &panSession{
		pointerID: pointerID,
		anchorX:   pos.X - v.t.PanX,
		anchorY:   pos.Y - v.t.PanY,
	}
	return true
}

// UpdatePan moves the content so the point grabbed at BeginPan follows the
// pointer 1:1. Ignored unless pointerID owns the active session.
func (v *Viewport) UpdatePan(pointerID int, pos Vec2) bool {
	if v.session == nil || v.session.pointerID != pointerID {
		return false
	}
	if !finite(pos.X) || !finite(pos.Y) {
		return false
	}
	v.t.PanX = pos.X - v.session.anchorX
	v.t.PanY = pos.Y - v.session.anchorY
	v.dirty = true
	return true
}

// EndPan clears the drag session. Safe to call when no session exists.
func (v *Viewport) EndPan() {
	v.session = nil
}

// EndPanPointer clears the drag session only if pointerID owns it.
func (v *Viewport) EndPanPointer(pointerID int) {
	if v.session != nil && v.session.pointerID == pointerID {
		v.session = nil
	}
}

// --- Zooming ---

// ZoomToPoint multiplies the scale by factor (clamped) while keeping the
// content point under pivot (screen coordinates) at the same screen position.
func (v *Viewport) ZoomToPoint(pivot Vec2, factor float64) {
	if !finite(factor) || factor <= 0 || !finite(pivot.X) || !finite(pivot.Y) {
		return
	}
	mx := pivot.X - v.Rect.X
	my := pivot.Y - v.Rect.Y
	v.zoomLocal(mx, my, factor)
}

// ZoomWheel zooms around the cursor for a wheel delta. Scrolling toward the
// viewer (negative deltaY) zooms in.
func (v *Viewport) ZoomWheel(pivot Vec2, deltaY float64) {
	v.ZoomToPoint(pivot, math.Exp(-deltaY*v.WheelSensitivity))
}

// ZoomByStep zooms by exp(step) around the viewport's geometric center.
func (v *Viewport) ZoomByStep(step float64) {
	v.zoomLocal(v.Rect.Width/2, v.Rect.Height/2, math.Exp(step))
}

// ZoomByStepAt zooms by exp(step) around the given screen pivot.
func (v *Viewport) ZoomByStepAt(step float64, pivot Vec2) {
	v.ZoomToPoint(pivot, math.Exp(step))
}

// zoomLocal applies the anchor-preserving zoom with a pivot in
// viewport-local coordinates.
func (v *Viewport) zoomLocal(mx, my, factor float64) {
	if !finite(factor) || factor <= 0 {
		return
	}
	newScale := v.clampScale(v.t.Scale * factor)
	ratio := newScale / v.t.Scale
	v.t.PanX = mx - (mx-v.t.PanX)*ratio
	v.t.PanY = my - (my-v.t.PanY)*ratio
	v.t.Scale = newScale
	v.dirty = true
}

func (v *Viewport) clampScale(s float64) float64 {
	return clamp(s, v.MinScale, v.MaxScale)
}

// --- Centering ---

// ContentBounds returns the union of the measured rectangles of the content
// layer's children. ok is false when there are no children.
func (v *Viewport) ContentBounds() (r Rect, ok bool) {
	if v.content == nil {
		return Rect{}, false
	}
	kids := v.content.Children()
	if len(kids) == 0 {
		return Rect{}, false
	}
	r = v.measure.Measure(kids[0])
	for _, k := range kids[1:] {
		r = r.Union(v.measure.Measure(k))
	}
	return r, true
}

// CenterOnContent pans so the content bounding box's midpoint sits at the
// viewport center. The scale is unchanged. Returns false (and leaves the
// transform untouched) for empty content or a zero-size viewport. A bounding
// box that is flat in one or both dimensions is still centered.
func (v *Viewport) CenterOnContent() bool {
	if v.Rect.Empty() {
		return false
	}
	b, ok := v.ContentBounds()
	if !ok || !finite(b.X) || !finite(b.Y) || !finite(b.Width) || !finite(b.Height) {
		return false
	}
	c := b.Center()
	v.t.PanX = v.Rect.Width/2 - v.t.Scale*c.X
	v.t.PanY = v.Rect.Height/2 - v.t.Scale*c.Y
	v.dirty = true
	return true
}

// CenterOnElement shifts the pan so the center of elementRect (screen
// coordinates) coincides with the viewport's screen-space center.
func (v *Viewport) CenterOnElement(elementRect Rect) {
	if !finite(elementRect.X) || !finite(elementRect.Y) {
		return
	}
	vc := v.Rect.Center()
	ec := elementRect.Center()
	v.t.PanX += vc.X - ec.X
	v.t.PanY += vc.Y - ec.Y
	v.dirty = true
}

// CenterOnNode centers the viewport on a content node.
func (v *Viewport) CenterOnNode(n *Node) {
	if n == nil || n.IsDisposed() {
		return
	}
	v.CenterOnElement(v.ScreenRect(n.WorldBounds()))
}

// Resize updates the viewport size and re-centers on the content when the
// size actually changed. Returns whether the size changed.
func (v *Viewport) Resize(w, h float64) bool {
	if w == v.Rect.Width && h == v.Rect.Height {
		return false
	}
	v.Rect.Width = w
	v.Rect.Height = h
	v.CenterOnContent()
	return true
}

// --- Coordinate conversion ---

// viewMatrix returns the content-to-screen affine matrix.
func (v *Viewport) viewMatrix() [6]float64 {
	return v.t.matrix(v.Rect.X, v.Rect.Y)
}

// ContentToScreen converts content coordinates to screen coordinates.
func (v *Viewport) ContentToScreen(cx, cy float64) (sx, sy float64) {
	return transformPoint(v.viewMatrix(), cx, cy)
}

// ScreenToContent converts screen coordinates to content coordinates.
func (v *Viewport) ScreenToContent(sx, sy float64) (cx, cy float64) {
	return transformPoint(invertAffine(v.viewMatrix()), sx, sy)
}

// ScreenRect maps a content-space rectangle to screen space.
func (v *Viewport) ScreenRect(r Rect) Rect {
	return transformRect(v.viewMatrix(), r)
}

// VisibleBounds returns the content-space rectangle currently visible.
func (v *Viewport) VisibleBounds() Rect {
	return transformRect(invertAffine(v.viewMatrix()), v.Rect)
}

// GeoM returns the content-to-screen transform as an ebiten.GeoM.
func (v *Viewport) GeoM() ebiten.GeoM {
	return geoM(v.viewMatrix())
}

// takeDirty reports whether the transform changed since the last call.
func (v *Viewport) takeDirty() bool {
	d := v.dirty
	v.dirty = false
	return d
}
