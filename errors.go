// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package stage

import "errors"

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("stage: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("stage: invalid dimensions")
)
