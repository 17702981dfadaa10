package document

import (
	"math"
	"sync"

	"github.com/gogpu/gg/recording"
	"github.com/jmgilman/go/errors"
)

// Page is one page of a document: a recording plus its native size in
// document units.
type Page struct {
	index         int
	width, height float64
	rec           *recording.Recording
}

// NewPage wraps an existing recording as a standalone page.
// The recording's coordinates are the page's local coordinates.
func NewPage(width, height float64, rec *recording.Recording) *Page {
	return &Page{index: -1, width: width, height: height, rec: rec}
}

// Size returns the native page size.
func (p *Page) Size() (width, height float64) {
	return p.width, p.height
}

// Index returns the zero-based page number, or -1 for a standalone page.
func (p *Page) Index() int {
	return p.index
}

// Recording returns the page's drawing commands.
func (p *Page) Recording() *recording.Recording {
	return p.rec
}

// Document is an ordered list of pages. It is safe for concurrent use.
type Document struct {
	mu    sync.RWMutex
	pages []*Page
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// NewPage records a width×height page by calling draw and appends it.
func (d *Document) NewPage(width, height float64, draw func(r *recording.Recorder)) *Page {
	r := recording.NewRecorder(int(math.Ceil(width)), int(math.Ceil(height)))
	if draw != nil {
		draw(r)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	p := &Page{index: len(d.pages), width: width, height: height, rec: r.FinishRecording()}
	d.pages = append(d.pages, p)
	return p
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.pages)
}

// Page returns page i.
func (d *Document) Page(i int) (*Page, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i < 0 || i >= len(d.pages) {
		return nil, errors.Newf(errors.CodeNotFound, "page %d out of range [0,%d)", i, len(d.pages))
	}
	return d.pages[i], nil
}
