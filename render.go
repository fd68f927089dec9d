package skillmap

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Palette used by the renderer.
var (
	colorBackground = hexColor(0x0f172a)
	colorPanel      = hexColor(0x1e293b)
	colorText       = hexColor(0xf1f5f9)
	colorMuted      = hexColor(0x94a3b8)
	colorFocus      = hexColor(0xfbbf24)
	colorBackdrop   = Color{0, 0, 0, 0.6}
	colorNotice     = hexColor(0xdc2626)
	colorImportant  = hexColor(0xf59e0b)
	colorDynamic    = hexColor(0xef4444)
)

// Font sizes in content pixels (map) or screen pixels (overlays).
const (
	titleFontSize   = 36
	labelFontSize   = 15
	headingFontSize = 26
	bodyFontSize    = 16
	smallFontSize   = 13

	// minLabelPixels hides cell labels once they would render smaller than
	// this many screen pixels.
	minLabelPixels = 6.0
	// focusRing is the width of the focus outline in screen pixels.
	focusRing = 4.0
)

// renderer holds draw-time resources. Fonts are created lazily on the first
// Draw so a Map can be built and driven without a graphics context.
type renderer struct {
	verts []ebiten.Vertex
	inds  []uint16
	dst   []ebiten.Vertex

	title, label, heading, body, small *TTFFont
	fontsTried                         bool
}

func (r *renderer) ensureFonts(m *Map) bool {
	if r.fontsTried {
		return r.body != nil
	}
	r.fontsTried = true
	base, err := DefaultFont(bodyFontSize)
	if err != nil {
		m.log.Error("load font", "err", err)
		return false
	}
	r.body = base
	r.title = base.WithSize(titleFontSize)
	r.label = base.WithSize(labelFontSize)
	r.heading = base.WithSize(headingFontSize)
	r.small = base.WithSize(smallFontSize)
	return true
}

// fillPolygon draws a filled convex polygon given in the space of m.
func (r *renderer) fillPolygon(dst *ebiten.Image, points []Vec2, m [6]float64, c Color) {
	if c.A <= 0 {
		return
	}
	r.verts, r.inds = buildPolygonFan(points, r.verts, r.inds)
	if len(r.inds) == 0 {
		return
	}
	if cap(r.dst) < len(r.verts) {
		r.dst = make([]ebiten.Vertex, len(r.verts))
	}
	r.dst = r.dst[:len(r.verts)]
	transformVertices(r.verts, r.dst, m, c)
	dst.DrawTriangles(r.dst, r.inds, ensureWhitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *renderer) fillRect(dst *ebiten.Image, rect Rect, m [6]float64, c Color) {
	if rect.Empty() {
		return
	}
	r.fillPolygon(dst, rectPoints(rect), m, c)
}

// Draw renders the map, the load notice, the modal and the optional FPS
// counter, then captures queued screenshots.
func (m *Map) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground.rgba())
	fontsOK := m.renderer.ensureFonts(m)

	var stats debugStats
	var t0 time.Time
	if m.debug {
		t0 = time.Now()
	}

	m.drawContent(screen, fontsOK, &stats)

	if m.debug {
		stats.contentTime = time.Since(t0)
		t0 = time.Now()
	}

	if fontsOK {
		m.drawNotice(screen)
		m.drawModal(screen)
	}
	if m.fps != nil {
		m.fps.draw(screen)
	}

	if m.debug {
		stats.overlayTime = time.Since(t0)
		m.debugLog(stats)
	}
	m.flushScreenshots(screen)
}

// drawContent draws every island that intersects the visible area. Island
// placeholders occupy layout space but draw nothing.
func (m *Map) drawContent(screen *ebiten.Image, fontsOK bool, stats *debugStats) {
	r := &m.renderer
	view := m.vp.viewMatrix()
	scale := m.vp.Transform().Scale
	visible := m.vp.VisibleBounds()
	focused := m.focus.Current()

	for _, is := range m.content.Children() {
		if !is.Visible || is.Kind != NodeKindIsland {
			continue
		}
		wb := is.WorldBounds()
		if !wb.Intersects(visible) {
			stats.islandsCull++
			continue
		}
		stats.islandsDrawn++
		r.fillRect(screen, wb, view, is.Background)

		for _, c := range is.Children() {
			if !c.Visible {
				continue
			}
			switch c.Kind {
			case NodeKindTitle:
				if fontsOK {
					m.drawContentText(screen, r.title, []string{c.Label}, c.WorldBounds().Center(), c.Color, scale)
				}
			case NodeKindCell:
				m.drawCell(screen, c, view, scale, c == focused, fontsOK, stats)
			}
		}
	}
}

func (m *Map) drawCell(screen *ebiten.Image, c *Node, view [6]float64, scale float64, focused, fontsOK bool, stats *debugStats) {
	r := &m.renderer
	wb := c.WorldBounds()
	if focused {
		r.fillPolygon(screen, hexPoints(inset(wb, -focusRing/scale)), view, colorFocus)
	}

	col := c.Color
	switch {
	case c.Placeholder:
		col = col.WithAlpha(0.15)
	case c == m.hover:
		col = Color{R: clamp01(col.R * 1.15), G: clamp01(col.G * 1.15), B: clamp01(col.B * 1.15), A: col.A}
	}
	r.fillPolygon(screen, hexPoints(wb), view, col)
	stats.cellsDrawn++

	if !fontsOK || c.Label == "" || labelFontSize*scale < minLabelPixels {
		return
	}
	lines := wrapText(r.label, c.Label, wb.Width*0.7)
	m.drawContentText(screen, r.label, lines, wb.Center(), colorText, scale)
	stats.labelsDrawn++
}

// drawContentText draws lines centered on a content-space point.
func (m *Map) drawContentText(screen *ebiten.Image, f *TTFFont, lines []string, at Vec2, c Color, scale float64) {
	sx, sy := m.vp.ContentToScreen(at.X, at.Y)
	var g ebiten.GeoM
	g.Scale(scale, scale)
	g.Translate(sx, sy)
	drawText(screen, f, lines, drawTextOptions{geoM: g, color: c, align: TextAlignCenter, vcenter: true})
}

// drawNotice shows the load failure message at the top of the screen.
func (m *Map) drawNotice(screen *ebiten.Image) {
	if m.notice == "" {
		return
	}
	r := &m.renderer
	w, _ := r.body.MeasureString(m.notice)
	box := Rect{
		X:      m.screen.Width/2 - w/2 - 16,
		Y:      16,
		Width:  w + 32,
		Height: r.body.LineHeight() + 16,
	}
	r.fillRect(screen, box, identityTransform, colorNotice.WithAlpha(0.9))
	var g ebiten.GeoM
	g.Translate(box.X+16, box.Y+8)
	drawText(screen, r.body, []string{m.notice}, drawTextOptions{geoM: g, color: colorText})
}

// drawModal draws the backdrop and the detail panel, scaled around the panel
// center by the fade tween.
func (m *Map) drawModal(screen *ebiten.Image) {
	md := m.modal
	if !md.Visible() {
		return
	}
	r := &m.renderer
	a := clamp01(md.Alpha)

	r.fillRect(screen, m.screen, identityTransform, colorBackdrop.WithAlpha(colorBackdrop.A*a))

	panel := md.Panel()
	c := panel.Center()
	s := md.PanelScale
	pm := scaleAboutAffine(s, c.X, c.Y)
	pg := geoM(pm)

	if md.Focused() == "" && md.IsOpen() {
		r.fillRect(screen, inset(panel, -2), pm, colorFocus.WithAlpha(0.6*a))
	}
	r.fillRect(screen, panel, pm, colorPanel.WithAlpha(a))

	// Close button
	cb := md.CloseButton()
	if md.Focused() == ModalControlClose {
		r.fillRect(screen, inset(cb, -2), pm, colorFocus.WithAlpha(a))
	}
	r.fillRect(screen, cb, pm, colorMuted.WithAlpha(0.25*a))
	at := func(x, y float64) ebiten.GeoM {
		var g ebiten.GeoM
		g.Translate(x, y)
		g.Concat(pg)
		return g
	}
	cc := cb.Center()
	drawText(screen, r.heading, []string{"×"}, drawTextOptions{
		geoM: at(cc.X, cc.Y), color: colorText.WithAlpha(a), align: TextAlignCenter, vcenter: true,
	})

	const pad = 24.0
	x := panel.X + pad
	y := panel.Y + pad
	textW := panel.Width - 2*pad

	item := md.Item()
	drawText(screen, r.small, []string{item.Category}, drawTextOptions{geoM: at(x, y), color: colorMuted.WithAlpha(a)})
	y += r.small.LineHeight()
	heading := wrapText(r.heading, item.Name, textW-modalCloseSize)
	drawText(screen, r.heading, heading, drawTextOptions{geoM: at(x, y), color: colorText.WithAlpha(a)})
	y += float64(len(heading))*r.heading.LineHeight() + 8

	// Badges
	bx := x
	for _, b := range md.Badges() {
		bc := colorImportant
		if b == BadgeDynamic {
			bc = colorDynamic
		}
		w, _ := r.small.MeasureString(b)
		box := Rect{X: bx, Y: y, Width: w + 20, Height: r.small.LineHeight() + 6}
		r.fillRect(screen, box, pm, bc.WithAlpha(a))
		drawText(screen, r.small, []string{b}, drawTextOptions{geoM: at(bx+10, y+3), color: ColorWhite.WithAlpha(a)})
		bx += box.Width + 8
	}
	if bx != x {
		y += r.small.LineHeight() + 18
	}

	sk := md.Skill()
	for _, sec := range [...]struct{ label, body string }{{"What", sk.What}, {"Why", sk.Why}} {
		if sec.body == "" {
			continue
		}
		drawText(screen, r.small, []string{sec.label}, drawTextOptions{geoM: at(x, y), color: colorMuted.WithAlpha(a)})
		y += r.small.LineHeight() + 2
		lines := wrapText(r.body, sec.body, textW)
		drawText(screen, r.body, lines, drawTextOptions{geoM: at(x, y), color: colorText.WithAlpha(a)})
		y += float64(len(lines))*r.body.LineHeight() + 14
	}
}
