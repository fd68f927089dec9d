// Package skillmap renders an interactive skill map on [Ebitengine]:
// categorized skills ("islands") laid out as hexagon cells on a pannable,
// zoomable canvas, with a detail overlay for the selected skill.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	m := skillmap.NewMap(skillmap.MapOptions{})
//	if err := m.Load(ctx, "http://localhost:8080/skills.json"); err != nil {
//		// the map shows an inline notice; keep running or bail out
//	}
//	skillmap.Run(m, skillmap.RunConfig{Title: "Skills", Width: 1280, Height: 800})
//
// [Map] implements [ebiten.Game], so it can also be embedded in an existing
// game loop by calling [Map.Update], [Map.Draw] and [Map.Layout] directly.
//
// # Data
//
// A skill document maps island names to islands and each island's skill
// names to skills. JSON and YAML are both accepted; key order in the source
// defines layout order and keyboard Tab order.
//
//	{
//	  "Backend": {
//	    "width": 3, "color": "text-sky-400", "background": "bg-sky-900",
//	    "skills": {
//	      "Go": {"what": "...", "why": "...", "important": true}
//	    }
//	  }
//	}
//
// # Viewport
//
// [Viewport] owns the view transform (uniform scale plus translation) over
// the content layer. Dragging empty space pans 1:1, the wheel zooms around the
// cursor, +/- zoom around the viewport center, and the content is centered on
// the first frame and whenever the window size changes. The scale always stays
// within [Viewport.MinScale] and [Viewport.MaxScale].
//
// # Input
//
// Real input is polled from Ebitengine each frame and converted to
// [InputEvent] values routed by [Map.Dispatch]. Synthetic input can be queued
// with [Map.InjectClick], [Map.InjectDrag], [Map.InjectWheel] and
// [Map.InjectKey], or scripted with [LoadTestScript].
//
// [Ebitengine]: https://ebitengine.org
package skillmap
