package probemesh

import "errors"

// Sentinel errors surfaced by the mesh builder and its persistence layer.
// Individual vertex rejections are not reported through these: they are
// recorded silently in Mesh.IgnoredVertices (spec 7, "Ignored-vertex").
var (
	// ErrMalformedHullSurface is returned by Define when the convex hull
	// extracted from the inner Delaunay mesh fails the closed-surface
	// check. Construction still completes with whatever hull could be
	// built; callers that need a guarantee should treat this as fatal.
	ErrMalformedHullSurface = errors.New("probemesh: hull surface is not closed")

	// ErrTruncatedArchive is returned by Load when the input stream ends
	// before a length-prefixed section is fully read.
	ErrTruncatedArchive = errors.New("probemesh: truncated mesh archive")
)
