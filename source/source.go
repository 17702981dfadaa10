// Package source defines the contract between a stage cache and the
// content it rasterizes, together with the adapters for custom painters and
// document pages.
//
// A [Source] knows its local size and can draw itself either synchronously
// onto a host context or asynchronously onto a stage surface. Asynchronous
// renders return a [Job] that can be cancelled; a cancelled job must stop
// touching its target soon after and must never be reported as a success.
package source

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/stage/geom"
)

// Target describes an asynchronous render request.
type Target struct {
	// DC is the stage surface. Its transform is prepared so that drawing in
	// local coordinates lands on the surface: scaled by Scale and, in region
	// mode, offset so that Region's top-left corner maps to the origin.
	DC *gg.Context

	// Region is the part of the local frame the surface covers. In full mode
	// it is the whole [0,w]×[0,h] extent.
	Region geom.Box

	// Scale is the rasterization scale.
	Scale float64

	// Full reports whether the whole content is rasterized.
	Full bool
}

// Job is a pending asynchronous render.
type Job interface {
	// Done is closed when the job completes, fails or is cancelled.
	Done() <-chan struct{}

	// Err reports the outcome once Done is closed. A cancelled job reports
	// an error matching context.Canceled.
	Err() error

	// Cancel asks the job to stop. It is idempotent.
	Cancel()
}

// Source is content that can be rasterized by a stage cache.
type Source interface {
	// Size returns the local extent of the content.
	Size() (width, height float64)

	// RenderAsync starts drawing the content onto t.DC. Only t.Region needs
	// to be covered; drawing outside it is clipped by the surface.
	RenderAsync(t Target) Job

	// RenderSync draws the content onto dc in local coordinates under dc's
	// current transform, on the calling goroutine.
	RenderSync(dc *gg.Context, width, height float64) error
}
