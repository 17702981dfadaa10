// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"fmt"
	"image/color"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// Canvas owns a drawing surface and the shapes rendered onto it. Shapes
// whose stage finishes mark the canvas dirty, so a host loop can render
// only when something changed.
//
// Render, Resize and Close must be called from one goroutine; MarkDirty
// may be called from any.
type Canvas struct {
	mu         sync.Mutex
	ctx        *gg.Context
	shapes     []*Shape
	width      int
	height     int
	background color.Color
	closed     bool

	dirty atomic.Bool
}

// NewCanvas creates a width×height canvas with a transparent background.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	c := &Canvas{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
	}
	c.dirty.Store(true)
	return c, nil
}

// Context returns the drawing context, or nil once the canvas is closed.
func (c *Canvas) Context() *gg.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	return c.ctx
}

// Size returns the canvas size in pixels.
func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// SetBackground sets the color the canvas is cleared to before each
// render. nil clears to transparent.
func (c *Canvas) SetBackground(col color.Color) {
	c.mu.Lock()
	c.background = col
	c.mu.Unlock()
	c.MarkDirty()
}

// Add appends shapes in paint order and attaches them to the canvas.
func (c *Canvas) Add(shapes ...*Shape) {
	c.mu.Lock()
	for _, s := range shapes {
		s.attach(c)
		c.shapes = append(c.shapes, s)
	}
	c.mu.Unlock()
	c.MarkDirty()
}

// Remove detaches a shape without closing it. It reports whether the shape
// was on the canvas.
func (c *Canvas) Remove(s *Shape) bool {
	c.mu.Lock()
	i := slices.Index(c.shapes, s)
	if i >= 0 {
		c.shapes = slices.Delete(c.shapes, i, i+1)
	}
	c.mu.Unlock()

	if i < 0 {
		return false
	}
	s.attach(nil)
	c.MarkDirty()
	return true
}

// Shapes returns the shapes in paint order.
func (c *Canvas) Shapes() []*Shape {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.shapes)
}

// MarkDirty flags the canvas for the next Render.
func (c *Canvas) MarkDirty() {
	c.dirty.Store(true)
}

// IsDirty reports whether the canvas needs rendering.
func (c *Canvas) IsDirty() bool {
	return c.dirty.Load()
}

// Resize changes the canvas size. The content is cleared and the canvas
// marked dirty; the next render recomputes every shape's budget.
func (c *Canvas) Resize(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}
	if err := c.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("stage: context resize failed: %w", err)
	}
	c.width = width
	c.height = height
	c.dirty.Store(true)
	return nil
}

// Render clears the canvas and renders every visible shape if the canvas
// is dirty. It reports whether anything was drawn.
func (c *Canvas) Render() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrCanvasClosed
	}
	// Cleared before drawing so that a stage finishing mid-frame is not lost.
	if !c.dirty.Swap(false) {
		return false, nil
	}

	if c.background != nil {
		c.ctx.ClearWithColor(rgbaOf(c.background))
	} else {
		c.ctx.Clear()
	}
	c.ctx.Identity()
	for _, s := range c.shapes {
		s.Render(c.ctx, c.width, c.height)
	}
	return true, nil
}

// Close closes every shape's cache and releases the surface. Close is
// idempotent.
func (c *Canvas) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	for _, s := range c.shapes {
		s.Close()
		s.attach(nil)
	}
	c.shapes = nil
	if c.ctx != nil {
		_ = c.ctx.Close()
		c.ctx = nil
	}
	return nil
}
