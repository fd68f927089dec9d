package skillmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenTarget pairs a field with the value it should reach.
type tweenTarget struct {
	field *float64
	to    float64
}

// TweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each frame; values are written back to the fields as they advance.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens   [4]*gween.Tween
	count    int
	fields   [4]*float64
	duration float32
	Done     bool
}

// newTweenGroup creates a group that animates each target from its current
// value. Targets beyond the fourth are ignored.
func newTweenGroup(duration float32, fn ease.TweenFunc, targets ...tweenTarget) *TweenGroup {
	g := &TweenGroup{duration: duration}
	for _, t := range targets {
		if g.count == len(g.tweens) {
			break
		}
		g.tweens[g.count] = gween.New(float32(*t.field), float32(t.to), duration, fn)
		g.fields[g.count] = t.field
		g.count++
	}
	if g.count == 0 {
		g.Done = true
	}
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Finish jumps every tween to its end value.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Set(g.duration)
		*g.fields[i] = float64(val)
	}
	g.Done = true
}
