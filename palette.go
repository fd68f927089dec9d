package skillmap

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// hue500 holds the 500 shade of each named hue, as 0xRRGGBB.
var hue500 = map[string]uint32{
	"slate":   0x64748b,
	"gray":    0x6b7280,
	"zinc":    0x71717a,
	"neutral": 0x737373,
	"stone":   0x78716c,
	"red":     0xef4444,
	"orange":  0xf97316,
	"amber":   0xf59e0b,
	"yellow":  0xeab308,
	"lime":    0x84cc16,
	"green":   0x22c55e,
	"emerald": 0x10b981,
	"teal":    0x14b8a6,
	"cyan":    0x06b6d4,
	"sky":     0x0ea5e9,
	"blue":    0x3b82f6,
	"indigo":  0x6366f1,
	"violet":  0x8b5cf6,
	"purple":  0xa855f7,
	"fuchsia": 0xd946ef,
	"pink":    0xec4899,
	"rose":    0xf43f5e,
}

// fallbackColor is used for tokens that cannot be resolved.
var fallbackColor = hexColor(hue500["slate"])

// ParseColorToken resolves a color token to a Color. Accepted forms:
//
//	#rgb, #rrggbb            hex
//	blue, blue-700           named hue with optional shade (50..950)
//	text-blue-500, bg-red-300  utility-class style with a prefix
//	bg-blue-500/20           optional /NN opacity suffix
//
// ok is false (and a neutral slate returned) when the token is not understood.
func ParseColorToken(token string) (c Color, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return fallbackColor, false
	}

	alpha := 1.0
	if i := strings.LastIndexByte(token, '/'); i >= 0 {
		pct, err := strconv.Atoi(token[i+1:])
		if err != nil || pct < 0 || pct > 100 {
			return fallbackColor, false
		}
		alpha = float64(pct) / 100
		token = token[:i]
	}

	if strings.HasPrefix(token, "#") {
		c, ok = parseHex(token)
		if !ok {
			return fallbackColor, false
		}
		return c.WithAlpha(alpha), true
	}

	parts := strings.Split(token, "-")
	if len(parts) > 1 && (parts[0] == "text" || parts[0] == "bg" || parts[0] == "border") {
		parts = parts[1:]
	}
	base, found := hue500[parts[0]]
	if !found || len(parts) > 2 {
		return fallbackColor, false
	}
	c = hexColor(base)
	if len(parts) == 2 {
		shade, err := strconv.Atoi(parts[1])
		if err != nil || shade < 50 || shade > 950 {
			return fallbackColor, false
		}
		c = shadeColor(c, shade)
	}
	return c.WithAlpha(alpha), true
}

// shadeColor approximates a shade by blending the 500 base toward white
// (lighter shades) or black (darker shades) in Lab space.
func shadeColor(c Color, shade int) Color {
	base := colorful.Color{R: c.R, G: c.G, B: c.B}
	var out colorful.Color
	switch {
	case shade < 500:
		out = base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, float64(500-shade)/500)
	case shade > 500:
		out = base.BlendLab(colorful.Color{}, float64(shade-500)/500*0.85)
	default:
		return c
	}
	out = out.Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// parseHex parses "#rgb" or "#rrggbb".
func parseHex(s string) (Color, bool) {
	hc, err := colorful.Hex(s)
	if err != nil {
		return Color{}, false
	}
	return Color{R: hc.R, G: hc.G, B: hc.B, A: 1}, true
}

func hexColor(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
		A: 1,
	}
}
