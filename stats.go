package stage

import "sync/atomic"

// Stats holds cache counters. All values are cumulative.
type Stats struct {
	// Started is the number of jobs handed to the source.
	Started uint64
	// Completed is the number of jobs whose stage became ready.
	Completed uint64
	// Failed is the number of jobs the source rejected.
	Failed uint64
	// Cancelled is the number of jobs cancelled because the view moved on.
	Cancelled uint64
	// Stale is the number of finished jobs discarded as no longer current.
	Stale uint64
	// ValidateHits is the number of requests the current stage already served.
	ValidateHits uint64
	// Declined is the number of requests whose visible region exceeded the
	// budget, so that no stage could serve them.
	Declined uint64
	// CompositeHits is the number of frames drawn from the stage.
	CompositeHits uint64
	// CompositeMisses is the number of frames that fell back to direct drawing.
	CompositeMisses uint64
}

// HitRate returns CompositeHits / (CompositeHits + CompositeMisses).
func (s Stats) HitRate() float64 {
	total := s.CompositeHits + s.CompositeMisses
	if total == 0 {
		return 0
	}
	return float64(s.CompositeHits) / float64(total)
}

type counters struct {
	started         atomic.Uint64
	completed       atomic.Uint64
	failed          atomic.Uint64
	cancelled       atomic.Uint64
	stale           atomic.Uint64
	validateHits    atomic.Uint64
	declined        atomic.Uint64
	compositeHits   atomic.Uint64
	compositeMisses atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Started:         c.started.Load(),
		Completed:       c.completed.Load(),
		Failed:          c.failed.Load(),
		Cancelled:       c.cancelled.Load(),
		Stale:           c.stale.Load(),
		ValidateHits:    c.validateHits.Load(),
		Declined:        c.declined.Load(),
		CompositeHits:   c.compositeHits.Load(),
		CompositeMisses: c.compositeMisses.Load(),
	}
}
