// Package cache provides a small generic LRU used to keep derived rasters
// next to the stage they were produced from.
//
//	c := cache.New[geom.Rotation, *gg.ImageBuf](4)
//	img := c.GetOrCreate(geom.Rotate90, func() *gg.ImageBuf { return rotate(src) })
//
// Entries are evicted strictly in least-recently-used order once the
// capacity is exceeded. Cache is safe for concurrent use and must not be
// copied after creation.
package cache
