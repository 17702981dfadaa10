// Package geom provides the viewport geometry used by the stage cache.
//
// All functions are pure. Coordinates come in three frames:
//
//   - local: the shape's unrotated source space, [0,w]×[0,h]
//   - rotated-local: local space after a right-angle rotation, before scale
//   - viewport: device pixels of the visible canvas
//
// A [View] carries the host transform (scale → rotate → translate about the
// shape centre). [VisibleRegion] inverts it for the four viewport corners and
// returns the part of the local frame that is on screen. Only right-angle
// rotations and uniform scales are supported; anything else is reported as
// not cacheable and callers render directly.
package geom
