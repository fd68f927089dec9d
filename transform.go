package skillmap

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Default transform limits.
const (
	DefaultMinScale     = 0.2
	DefaultMaxScale     = 2.0
	DefaultInitialScale = 0.75
)

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is the view transform applied to the content layer: a uniform
// scale followed by a translation, relative to the viewport origin.
//
//	screen = viewportOrigin + pan + scale*content
type Transform struct {
	Scale float64
	PanX  float64
	PanY  float64
}

// matrix returns the transform as an affine matrix [a, b, c, d, tx, ty],
// offset by the viewport origin (ox, oy).
func (t Transform) matrix(ox, oy float64) [6]float64 {
	return [6]float64{t.Scale, 0, 0, t.Scale, ox + t.PanX, oy + t.PanY}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// scaleAboutAffine returns a uniform scale by s that keeps (cx, cy) fixed.
func scaleAboutAffine(s, cx, cy float64) [6]float64 {
	return multiplyAffine(translateAffine(cx, cy),
		multiplyAffine([6]float64{s, 0, 0, s, 0, 0}, translateAffine(-cx, -cy)))
}

// translateAffine returns a pure translation matrix.
func translateAffine(x, y float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, x, y}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect maps an axis-aligned rect through a scale+translate matrix.
// Only valid for matrices without rotation or skew.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.X+r.Width, r.Y+r.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
