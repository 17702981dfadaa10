package stage

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/gogpu/gg"

	"github.com/gogpu/stage/geom"
	"github.com/gogpu/stage/internal/cache"
	"github.com/gogpu/stage/internal/debounce"
	"github.com/gogpu/stage/source"
)

// Request is one frame's cache validation input.
type Request struct {
	// View is the host transform for this frame.
	View geom.View

	// Budget is the maximum stage side in pixels. Non-positive values use
	// the cache's default budget.
	Budget int
}

// Cache keeps one pre-rasterized stage of a source and decides, frame by
// frame, whether to refresh it.
//
// Cache is safe for concurrent use.
type Cache struct {
	src   source.Source
	cfg   config
	deb   *debounce.Debouncer
	stats counters

	mu       sync.Mutex
	st       State
	stage    *gg.Pixmap
	variants *cache.Cache[geom.Rotation, *gg.ImageBuf]
	job      *pending
	gen      uint64
	latest   Request
	closed   bool
}

// pending is a job in flight together with the request that started it.
type pending struct {
	job      source.Job
	gen      uint64
	full     bool
	scale    float64
	region   geom.Box
	viewport geom.Box
	pm       *gg.Pixmap
}

// NewCache returns an empty cache for src.
func NewCache(src source.Source, opts ...Option) *Cache {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache{
		src:      src,
		cfg:      cfg,
		deb:      debounce.New(cfg.debounce, cfg.maxWait),
		variants: cache.New[geom.Rotation, *gg.ImageBuf](cfg.variants),
		st:       State{Scale: 1, Budget: cfg.defaultBudget},
	}
}

// Budget returns the size budget for a display of the given size:
// ceil(max(w, h) × factor), or the default budget when the size is unknown.
func (c *Cache) Budget(displayWidth, displayHeight int) int {
	d := max(displayWidth, displayHeight)
	if d <= 0 {
		return c.cfg.defaultBudget
	}
	return int(math.Ceil(float64(d) * c.cfg.budgetFactor))
}

// Validate applies a finished job, cancels an in-flight job the view no
// longer needs and schedules a new one when the stage cannot serve the
// view. It never blocks on rendering.
//
// Views with a non-uniform scale or a non right-angle rotation leave the
// stage untouched, and a start still waiting on the debounce window does
// not happen unless a cacheable view arrives first.
func (c *Cache) Validate(req Request) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.collectLocked()

	if req.Budget <= 0 {
		req.Budget = c.cfg.defaultBudget
	}
	c.latest = req
	if !req.View.Cacheable() {
		c.mu.Unlock()
		return
	}
	c.st.Budget = req.Budget

	if c.job != nil {
		if c.keepLocked(req) {
			c.mu.Unlock()
			return
		}
		c.cancelLocked()
	}

	_, out := c.planLocked(req)
	c.mu.Unlock()

	switch out {
	case outcomeStart:
		c.deb.Trigger(c.fire)
	case outcomeHit:
		c.stats.validateHits.Add(1)
	case outcomeDeclined:
		c.stats.declined.Add(1)
		c.cfg.log().Debug("stage: visible region exceeds budget",
			"scale", req.View.Scale(), "budget", req.Budget)
	}
}

// Poll applies a finished job without a new request. It reports whether
// the state changed.
func (c *Cache) Poll() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collectLocked()
}

// State returns a snapshot of the stage bookkeeping.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st
}

// Stats returns the cache counters.
func (c *Cache) Stats() Stats {
	return c.stats.snapshot()
}

// Close cancels any scheduled or running job and drops the stage. The
// cache ignores all later requests.
func (c *Cache) Close() {
	c.deb.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.job != nil {
		c.cancelLocked()
	}
	c.dropLocked()
	c.closed = true
}

// fire runs when the debounce window closes.
func (c *Cache) fire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.job != nil || !c.latest.View.Cacheable() {
		return
	}

	if p, out := c.planLocked(c.latest); out == outcomeStart {
		c.startLocked(p)
	}
}

type outcome int

const (
	outcomeStart outcome = iota
	outcomeHit
	outcomeDeclined
	outcomeOffscreen
)

// plan describes the stage a view needs.
type plan struct {
	full     bool
	scale    float64
	region   geom.Box
	viewport geom.Box
}

// planLocked decides what the view needs: nothing (hit), nothing possible
// (declined or off screen) or a new stage described by the returned plan.
func (c *Cache) planLocked(req Request) (plan, outcome) {
	v := req.View
	s := v.Scale()
	w, h := c.src.Size()

	if geom.FitsFull(w, h, s, req.Budget) {
		p := plan{full: true, scale: s, region: geom.NewBox(0, 0, w, h)}
		if c.st.Ready && c.st.FullImage && c.st.Scale == s {
			return p, outcomeHit
		}
		return p, outcomeStart
	}

	vb := geom.VisibleRegion(v)
	p := plan{scale: s, viewport: vb}
	if vb.IsEmpty() {
		return p, outcomeOffscreen
	}
	extent := float64(req.Budget) / s
	if vb.Width() > extent || vb.Height() > extent {
		return p, outcomeDeclined
	}
	if c.st.Ready && !c.st.FullImage && c.st.Scale == s &&
		c.st.Region.Expand(c.cfg.hysteresis).Contains(vb) {
		return p, outcomeHit
	}
	p.region = geom.PaddedRegion(vb, extent, w, h)
	return p, outcomeStart
}

// keepLocked reports whether the job in flight still serves req.
func (c *Cache) keepLocked(req Request) bool {
	p := c.job
	s := req.View.Scale()
	if p.scale != s {
		return false
	}
	w, h := c.src.Size()
	if geom.FitsFull(w, h, s, req.Budget) {
		return p.full
	}
	if p.full {
		return false
	}
	vb := geom.VisibleRegion(req.View)
	return vb.Equal(p.viewport) || p.region.Contains(vb)
}

func (c *Cache) startLocked(p plan) {
	pw, ph := geom.PixelSize(p.region.Width(), p.region.Height(), p.scale)
	pm := gg.NewPixmap(pw, ph)
	dc := gg.NewContext(pw, ph, gg.WithPixmap(pm))
	dc.Scale(p.scale, p.scale)
	dc.Translate(-p.region.Left, -p.region.Top)

	c.dropLocked()
	c.gen++
	c.st.Ready = false
	c.st.Processing = true
	c.st.FullImage = p.full
	c.st.Scale = p.scale
	c.st.Region = p.region
	c.st.LastViewport = p.viewport
	c.st.HasViewport = !p.full

	job := c.src.RenderAsync(source.Target{DC: dc, Region: p.region, Scale: p.scale, Full: p.full})
	pj := &pending{
		job:      job,
		gen:      c.gen,
		full:     p.full,
		scale:    p.scale,
		region:   p.region,
		viewport: p.viewport,
		pm:       pm,
	}
	c.job = pj
	c.stats.started.Add(1)
	c.cfg.log().Debug("stage: job started",
		"gen", pj.gen, "full", p.full, "scale", p.scale, "region", p.region, "pixels", pw*ph)

	go c.watch(pj)
}

// watch waits for a job and asks the host to repaint if the job is still
// current. The result itself is applied by collectLocked.
func (c *Cache) watch(p *pending) {
	<-p.job.Done()

	// A nil job with an unchanged generation means Validate or Poll has
	// already collected this one.
	c.mu.Lock()
	current := !c.closed && c.gen == p.gen && (c.job == nil || c.job.gen == p.gen)
	c.mu.Unlock()

	if !current {
		c.stats.stale.Add(1)
		return
	}
	if c.cfg.repaint != nil {
		c.cfg.repaint()
	}
}

// collectLocked applies the current job's outcome if it has finished.
func (c *Cache) collectLocked() bool {
	p := c.job
	if p == nil || p.gen != c.gen {
		return false
	}
	select {
	case <-p.job.Done():
	default:
		return false
	}

	c.job = nil
	c.st.Processing = false
	if err := p.job.Err(); err != nil {
		c.st.Ready = false
		c.dropLocked()
		c.stats.failed.Add(1)
		if errors.Is(err, context.Canceled) {
			c.cfg.log().Debug("stage: job cancelled", "gen", p.gen)
		} else {
			c.cfg.log().Warn("stage: job rejected", "gen", p.gen, "err", err)
		}
		return true
	}

	c.stage = p.pm
	c.st.Ready = true
	c.stats.completed.Add(1)
	c.cfg.log().Debug("stage: job completed", "gen", p.gen, "full", p.full, "scale", p.scale)
	return true
}

// cancelLocked abandons the job in flight. Its callbacks become stale.
func (c *Cache) cancelLocked() {
	p := c.job
	p.job.Cancel()
	c.job = nil
	c.gen++
	c.st.Ready = false
	c.st.Processing = false
	c.dropLocked()
	c.stats.cancelled.Add(1)
	c.cfg.log().Debug("stage: job cancelled", "gen", p.gen, "scale", p.scale)
}

func (c *Cache) dropLocked() {
	c.stage = nil
	c.variants.Clear()
}
