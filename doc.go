// Package stage implements an adaptive progressive rasterization cache for
// large vector content on a pannable, zoomable canvas.
//
// # Overview
//
// Redrawing a large document page or a complex painter at full fidelity on
// every frame is too slow for interactive navigation. A [Cache] keeps one
// pre-rasterized bitmap of the content, the stage, covering either the
// whole content (when it fits the size budget) or a padded region around the
// visible part. Frames whose transform the stage can serve are composited
// from it; all other frames draw the content directly.
//
// Stages are produced asynchronously. After the view settles for a short
// debounce window, the cache asks its [source.Source] to draw onto a fresh
// surface. When the view moves on while a job runs, the job is cancelled and
// its late result discarded.
//
// # Quick Start
//
//	canvas, _ := stage.NewCanvas(1280, 800)
//	doc := document.New()
//	page := doc.NewPage(5000, 5000, drawMap)
//
//	shape := stage.NewDocumentShape(document.NewEngine(), page)
//	shape.Left, shape.Top = 640, 400
//	shape.ScaleX, shape.ScaleY = 0.5, 0.5
//	canvas.Add(shape)
//
//	for frame := range frames {
//	    applyNavigation(shape, frame)
//	    canvas.MarkDirty()
//	    if painted, _ := canvas.Render(); painted {
//	        present(canvas.Context().Image())
//	    }
//	}
//
// # Frames
//
//   - local: the content's unrotated space, [0,w]×[0,h]
//   - viewport: device pixels of the host canvas
//
// Only uniform scales and right-angle rotations are served from a stage. Any
// other transform renders directly and leaves the cache untouched.
//
// # Threading
//
// A Cache is safe for concurrent use. Job results are applied on the
// goroutine that calls [Cache.Validate] or [Cache.Poll]; the cache only ever
// calls back into the host through the repaint hook, which may run on any
// goroutine.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package stage
