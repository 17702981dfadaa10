// Package document models paged vector documents and rasterizes their
// pages asynchronously.
//
// A page is an immutable [recording.Recording] captured with the gg
// recording API. An [Engine] plays pages back onto caller-supplied
// gg contexts, one goroutine per request, with a process-wide bound on the
// number of pages rasterized at once.
//
//	doc := document.New()
//	page := doc.NewPage(595, 842, func(r *recording.Recorder) {
//	    r.SetFillRGBA(0.2, 0.2, 0.8, 1)
//	    r.DrawRectangle(50, 50, 200, 100)
//	    r.Fill()
//	})
//
//	eng := document.NewEngine(document.WithParallelism(2))
//	task := eng.Render(page, dc)
//	<-task.Done()
//	if err := task.Err(); err != nil {
//	    // cancelled or failed
//	}
//
// Recorded text is not rasterized; text layout belongs to the caller, who
// may record glyph outlines as paths instead.
package document
