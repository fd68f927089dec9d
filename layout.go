package skillmap

import (
	"math"
	"strings"
)

// dimFactor is the brightness applied to skills not marked important.
const dimFactor = 0.6

// defaultBackgroundAlpha is applied to island backgrounds whose token has no
// explicit opacity.
const defaultBackgroundAlpha = 0.2

// LayoutOptions controls the content-space geometry of the map.
type LayoutOptions struct {
	// CellSize is the edge of the square box each hexagon is inscribed in.
	CellSize float64
	// CellMargin is the gap between neighbouring cells.
	CellMargin float64
	// IslandPadding is the inner padding of an island wrapper.
	IslandPadding float64
	// TitleHeight is the space reserved above the grid for the island title.
	TitleHeight float64
	// IslandGap separates islands horizontally and vertically.
	IslandGap float64
	// IslandsPerRow is the number of islands placed before wrapping.
	IslandsPerRow int
}

// DefaultLayoutOptions returns the stock geometry.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		CellSize:      120,
		CellMargin:    8,
		IslandPadding: 32,
		TitleHeight:   72,
		IslandGap:     64,
		IslandsPerRow: 3,
	}
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	d := DefaultLayoutOptions()
	if o.CellSize <= 0 {
		o.CellSize = d.CellSize
	}
	if o.CellMargin < 0 {
		o.CellMargin = d.CellMargin
	}
	if o.IslandPadding < 0 {
		o.IslandPadding = d.IslandPadding
	}
	if o.TitleHeight < 0 {
		o.TitleHeight = d.TitleHeight
	}
	if o.IslandGap < 0 {
		o.IslandGap = d.IslandGap
	}
	if o.IslandsPerRow <= 0 {
		o.IslandsPerRow = d.IslandsPerRow
	}
	return o
}

// pitch is the distance between the origins of adjacent cells.
func (o LayoutOptions) pitch() float64 {
	return o.CellSize + o.CellMargin
}

// gridSize returns the size of a grid with the given columns and cell count.
// Odd columns are shifted down by half a pitch, so grids with more than one
// column are half a pitch taller.
func (o LayoutOptions) gridSize(cols, cells int) (w, h float64) {
	if cols <= 0 {
		cols = DefaultIslandWidth
	}
	rows := int(math.Ceil(float64(cells) / float64(cols)))
	if rows == 0 {
		rows = 1
	}
	p := o.pitch()
	usedCols := cols
	if cells < cols && cells > 0 {
		usedCols = cells
	}
	w = float64(usedCols)*p - o.CellMargin
	h = float64(rows)*p - o.CellMargin
	if usedCols > 1 {
		h += p / 2
	}
	return w, h
}

// cellOffset returns the top-left of cell i within its grid.
func (o LayoutOptions) cellOffset(i, cols int) (x, y float64) {
	col := i % cols
	row := i / cols
	p := o.pitch()
	x = float64(col) * p
	y = float64(row) * p
	if col%2 == 1 {
		y += p / 2
	}
	return x, y
}

// hexPolygon returns a flat-topped hexagon inscribed in a w×h box.
func hexPolygon(w, h float64) HitPolygon {
	return HitPolygon{Points: []Vec2{
		{0, h / 2},
		{w / 4, 0},
		{3 * w / 4, 0},
		{w, h / 2},
		{3 * w / 4, h},
		{w / 4, h},
	}}
}

// BuildContent lays out doc as a content layer. Direct children of the
// returned container are island wrappers and island placeholders, in
// document order; each island holds a title node followed by its cells.
func BuildContent(doc *Document, opts LayoutOptions) *Node {
	opts = opts.withDefaults()
	content := NewContainer("content")
	if doc == nil {
		return content
	}

	var x, y, rowH float64
	col := 0
	for i := range doc.Islands {
		is := &doc.Islands[i]

		var n *Node
		if is.Placeholder {
			gw, gh := opts.gridSize(is.Width, is.Width)
			n = NewNode(is.Name, NodeKindIslandPlaceholder,
				gw+2*opts.IslandPadding, gh+opts.TitleHeight+2*opts.IslandPadding)
		} else {
			n = buildIsland(is, opts)
		}

		if col == opts.IslandsPerRow {
			x = 0
			y += rowH + opts.IslandGap
			rowH = 0
			col = 0
		}
		n.X, n.Y = x, y
		content.AddChild(n)

		x += n.Width + opts.IslandGap
		rowH = math.Max(rowH, n.Height)
		col++
	}
	return content
}

func buildIsland(is *Island, opts LayoutOptions) *Node {
	fg, _ := ParseColorToken(is.Color)
	bg, _ := ParseColorToken(is.Background)
	if !strings.Contains(is.Background, "/") {
		bg.A = defaultBackgroundAlpha
	}

	cols := is.Width
	if cols <= 0 {
		cols = DefaultIslandWidth
	}
	gw, gh := opts.gridSize(cols, len(is.Skills))
	pad := opts.IslandPadding
	island := NewNode(is.Name, NodeKindIsland, gw+2*pad, gh+opts.TitleHeight+2*pad)
	island.Label = is.Name
	island.Color = fg
	island.Background = bg

	title := NewNode(is.Name+"/title", NodeKindTitle, gw, opts.TitleHeight)
	title.X, title.Y = pad, pad
	title.Label = is.Name
	title.Color = fg
	island.AddChild(title)

	gridX, gridY := pad, pad+opts.TitleHeight
	for i := range is.Skills {
		s := &is.Skills[i]
		cell := NewNode(s.Name, NodeKindCell, opts.CellSize, opts.CellSize)
		cx, cy := opts.cellOffset(i, cols)
		cell.X, cell.Y = gridX+cx, gridY+cy
		cell.Item = ItemID{Category: is.Name, Name: s.Name}
		cell.Color = fg
		if s.Placeholder {
			cell.Placeholder = true
		} else {
			cell.Label = s.Name
			cell.Skill = s
			cell.HitShape = hexPolygon(opts.CellSize, opts.CellSize)
			if !s.Important {
				cell.Color = fg.Scale(dimFactor)
			}
		}
		island.AddChild(cell)
	}
	return island
}

// SelectableCells returns the selectable cells under root in tree order,
// which is also the keyboard Tab order.
func SelectableCells(root *Node) []*Node {
	var out []*Node
	if root == nil {
		return out
	}
	root.Walk(func(n *Node) bool {
		if n.Selectable() {
			out = append(out, n)
		}
		return true
	})
	return out
}
