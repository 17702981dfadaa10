package source

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/stage/document"
)

type pageSource struct {
	engine *document.Engine
	page   *document.Page
}

// NewDocumentPage returns a Source that rasterizes one document page
// through engine. The page's native size is the local extent.
func NewDocumentPage(engine *document.Engine, page *document.Page) Source {
	return &pageSource{engine: engine, page: page}
}

func (s *pageSource) Size() (float64, float64) {
	return s.page.Size()
}

func (s *pageSource) RenderAsync(t Target) Job {
	return s.engine.Render(s.page, t.DC)
}

// RenderSync ignores width and height; the page's recording already has
// its native extent.
func (s *pageSource) RenderSync(dc *gg.Context, _, _ float64) error {
	return s.engine.RenderSync(s.page, dc)
}
