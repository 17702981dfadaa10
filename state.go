package stage

import (
	"fmt"

	"github.com/gogpu/stage/geom"
)

// State is a snapshot of a cache's stage bookkeeping.
//
// Ready and Processing are never both true. While Processing is set,
// FullImage, Region and Scale describe the job in flight rather than a
// usable stage.
type State struct {
	// Ready reports whether a completed stage is available.
	Ready bool

	// Processing reports whether a job is in flight.
	Processing bool

	// FullImage reports whether the stage covers the whole content.
	FullImage bool

	// Region is the local box the stage covers. For full stages it is the
	// whole content extent.
	Region geom.Box

	// LastViewport is the visible box that requested the current region.
	// It is only meaningful when HasViewport is set.
	LastViewport geom.Box
	HasViewport  bool

	// Scale is the rasterization scale of the stage.
	Scale float64

	// Budget is the size budget in pixels from the most recent request.
	Budget int
}

// Phase names the state machine position: empty, processing or ready.
func (s State) Phase() string {
	switch {
	case s.Processing:
		return "processing"
	case s.Ready:
		return "ready"
	default:
		return "empty"
	}
}

// String implements fmt.Stringer.
func (s State) String() string {
	mode := "region"
	if s.FullImage {
		mode = "full"
	}
	return fmt.Sprintf("%s %s scale=%g region=%v budget=%d", s.Phase(), mode, s.Scale, s.Region, s.Budget)
}
