// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCanvasInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}} {
		_, err := NewCanvas(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "%dx%d", dims[0], dims[1])
	}
}

func TestCanvasRendersOnlyWhenDirty(t *testing.T) {
	cv, err := NewCanvas(200, 100)
	require.NoError(t, err)
	defer cv.Close()
	cv.SetBackground(color.White)

	src := newFakeSource(200, 100)
	s := placedShape(src)
	cv.Add(s)

	drawn, err := cv.Render()
	require.NoError(t, err)
	assert.True(t, drawn)
	assert.False(t, cv.IsDirty())
	assertColor(t, green, pixelAt(cv.Context(), 100, 50))

	drawn, err = cv.Render()
	require.NoError(t, err)
	assert.False(t, drawn, "nothing changed")

	src.last().complete(fillLocal(0, 0, 200, 100, red), nil)
	require.Eventually(t, cv.IsDirty, 2*time.Second, 5*time.Millisecond)

	drawn, err = cv.Render()
	require.NoError(t, err)
	assert.True(t, drawn)
	assertColor(t, red, pixelAt(cv.Context(), 100, 50))
	assert.Equal(t, 1, src.syncCalls)
}

func TestCanvasAddRemove(t *testing.T) {
	cv, err := NewCanvas(200, 100)
	require.NoError(t, err)
	defer cv.Close()
	cv.SetBackground(color.White)

	a, b := placedShape(newFakeSource(200, 100)), placedShape(newFakeSource(200, 100))
	cv.Add(a, b)
	assert.Equal(t, []*Shape{a, b}, cv.Shapes())

	_, err = cv.Render()
	require.NoError(t, err)
	assert.True(t, cv.Remove(a))
	assert.False(t, cv.Remove(a))
	assert.True(t, cv.IsDirty())
	assert.Equal(t, []*Shape{b}, cv.Shapes())

	// A detached shape no longer dirties the canvas.
	_, err = cv.Render()
	require.NoError(t, err)
	a.RequestRepaint()
	assert.False(t, cv.IsDirty())
	a.Close()
}

func TestCanvasResize(t *testing.T) {
	cv, err := NewCanvas(200, 100)
	require.NoError(t, err)
	defer cv.Close()

	_, err = cv.Render()
	require.NoError(t, err)

	require.NoError(t, cv.Resize(200, 100))
	assert.False(t, cv.IsDirty(), "same size is a no-op")

	require.NoError(t, cv.Resize(320, 240))
	w, h := cv.Size()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
	assert.True(t, cv.IsDirty())
	assert.Equal(t, 320, cv.Context().Width())

	assert.ErrorIs(t, cv.Resize(0, 1), ErrInvalidDimensions)
}

func TestCanvasClose(t *testing.T) {
	cv, err := NewCanvas(200, 100)
	require.NoError(t, err)

	src := newFakeSource(200, 100)
	s := placedShape(src)
	cv.Add(s)
	_, err = cv.Render()
	require.NoError(t, err)
	j := src.last()

	require.NoError(t, cv.Close())
	require.NoError(t, cv.Close())
	assert.True(t, j.cancelled.Load(), "closing the canvas closes its shapes")
	assert.Nil(t, cv.Context())

	_, err = cv.Render()
	assert.ErrorIs(t, err, ErrCanvasClosed)
	assert.ErrorIs(t, cv.Resize(10, 10), ErrCanvasClosed)
}
