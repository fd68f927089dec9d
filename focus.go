package skillmap

// FocusRing tracks keyboard focus over the selectable cells of a content
// layer. Cells are visited in tree order and the ring wraps at both ends.
type FocusRing struct {
	cells   []*Node
	current int // -1 when nothing is focused
}

// NewFocusRing creates a ring over the selectable cells under root.
func NewFocusRing(root *Node) *FocusRing {
	r := &FocusRing{current: -1}
	r.Reset(root)
	return r
}

// Reset rebuilds the ring for a new content layer and clears focus.
func (r *FocusRing) Reset(root *Node) {
	r.cells = SelectableCells(root)
	r.current = -1
}

// Len returns the number of focusable cells.
func (r *FocusRing) Len() int {
	return len(r.cells)
}

// Current returns the focused cell, or nil.
func (r *FocusRing) Current() *Node {
	if r.current < 0 || r.current >= len(r.cells) {
		return nil
	}
	return r.cells[r.current]
}

// Set focuses n. Returns false (leaving focus unchanged) if n is not in the ring.
func (r *FocusRing) Set(n *Node) bool {
	for i, c := range r.cells {
		if c == n {
			r.current = i
			return true
		}
	}
	return false
}

// Clear drops focus.
func (r *FocusRing) Clear() {
	r.current = -1
}

// Next moves focus forward and returns the newly focused cell.
func (r *FocusRing) Next() *Node {
	if len(r.cells) == 0 {
		return nil
	}
	r.current = (r.current + 1) % len(r.cells)
	return r.cells[r.current]
}

// Prev moves focus backward and returns the newly focused cell.
func (r *FocusRing) Prev() *Node {
	if len(r.cells) == 0 {
		return nil
	}
	if r.current <= 0 {
		r.current = len(r.cells) - 1
	} else {
		r.current--
	}
	return r.cells[r.current]
}
