package skillmap

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter draws the current FPS and TPS into a small cached image that is
// refreshed every ~0.5 seconds.
type fpsCounter struct {
	img       *ebiten.Image
	sinceDraw float64
	everDrawn bool
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{}
}

// update advances the refresh timer and reports whether the text should be
// redrawn this frame.
func (f *fpsCounter) update(dt float64) bool {
	f.sinceDraw += dt
	if f.everDrawn && f.sinceDraw < 0.5 {
		return false
	}
	f.sinceDraw = 0
	f.everDrawn = true
	return true
}

func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	if f.update(float64(frameDelta())) {
		f.img.Clear()
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(f.img, nil)
}
