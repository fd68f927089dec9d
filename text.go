package skillmap

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("skillmap: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing this font's source at a different size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	return newTTFFont(f.source, size)
}

// defaultFontSource is parsed once; the map is single-threaded.
var defaultFontSource *text.GoTextFaceSource

// DefaultFont returns Go Regular at the given size.
func DefaultFont(size float64) (*TTFFont, error) {
	if defaultFontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("skillmap: failed to parse default font: %w", err)
		}
		defaultFontSource = src
	}
	return newTTFFont(defaultFontSource, size), nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// --- Wrapping ---

// wrapText breaks s into lines no wider than maxWidth, splitting on spaces.
// Words wider than maxWidth get a line of their own. Explicit newlines are
// kept.
func wrapText(f Font, s string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if cw, _ := f.MeasureString(candidate); cw <= maxWidth {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// drawTextOptions describes one text draw.
type drawTextOptions struct {
	geoM  ebiten.GeoM
	color Color
	align TextAlign
	// vcenter centers the block vertically on the origin instead of hanging
	// it below.
	vcenter bool
}

// drawText renders lines with the given font. The origin is the top (or
// middle, with vcenter) of the block at the alignment edge.
func drawText(dst *ebiten.Image, f *TTFFont, lines []string, o drawTextOptions) {
	if f == nil || len(lines) == 0 || o.color.A <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = o.geoM
	op.ColorScale.ScaleWithColor(o.color.rgba())
	op.LineSpacing = f.lh
	switch o.align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	}
	if o.vcenter {
		op.SecondaryAlign = text.AlignCenter
	}
	text.Draw(dst, strings.Join(lines, "\n"), f.face, op)
}
