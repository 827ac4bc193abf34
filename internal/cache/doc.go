// Package cache provides the LRU cache owned by the shaping and scaling
// contexts.
//
// A Cache is bound to exactly one owner (a text.ShapeContext or a
// text.ScaleContext) for the lifetime of a pipeline run and is dropped
// together with it:
//
//	c := cache.New[glyphKey, *compose.Bitmap](512)
//	if bm, ok := c.Get(key); ok {
//	    return bm
//	}
//	c.Set(key, render())
//
// Cache is not safe for concurrent use.
package cache
