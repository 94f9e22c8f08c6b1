package probemesh

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SurfaceTriangle is a triangle on the boundary of a removed region (a
// Bowyer-Watson hole) or on the convex hull, carrying adjacency to its
// three edge neighbors and a back-reference to the tetrahedron face it
// came from.
type SurfaceTriangle struct {
	Indices   [3]uint32
	Neighbors [3]uint32
	UnusedIdx uint32
	TetIndex  uint32
	TetFace   uint32
}

// edge returns the edgeIndex-th edge (0..2) of the triangle, vertices
// sorted with the smaller index first.
func (f SurfaceTriangle) edge(edgeIndex int) (uint32, uint32) {
	a, b := f.Indices[edgeIndex], f.Indices[(edgeIndex+1)%3]
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Normalize swaps vertex (and neighbor) slots 0 and 1 if needed so that
// (p2-p1) x (p3-p1) points away from the tetrahedron's unused vertex.
func (f *SurfaceTriangle) Normalize(vertices []Vector3) {
	p0 := vertices[f.UnusedIdx]
	p1 := vertices[f.Indices[0]]
	p2 := vertices[f.Indices[1]]
	p3 := vertices[f.Indices[2]]

	outward := p1.Sub(p0)
	actualNormal := p2.Sub(p1).Cross(p3.Sub(p1))
	if outward.Dot(actualNormal) < 0 {
		f.Indices[0], f.Indices[1] = f.Indices[1], f.Indices[0]
		f.Neighbors[0], f.Neighbors[1] = f.Neighbors[1], f.Neighbors[0]
	}
}

// CalculateScore returns the ratio of the triangle's longest to shortest
// side, clamped above by a large constant; used to break ties when
// picking which hull triangle to process first during shell construction.
func (f SurfaceTriangle) CalculateScore(vertices []Vector3) float32 {
	const largeValue = 1e6

	p1 := vertices[f.Indices[0]]
	p2 := vertices[f.Indices[1]]
	p3 := vertices[f.Indices[2]]

	sides := []float64{
		float64(p1.Sub(p2).Length()),
		float64(p2.Sub(p3).Length()),
		float64(p3.Sub(p1).Length()),
	}
	shortest := floats.Min(sides)
	longest := floats.Max(sides)

	if shortest < 1e-12 {
		return largeValue
	}
	ratio := float32(longest / shortest)
	if ratio > largeValue {
		return largeValue
	}
	return ratio
}

// surfaceEdge is the scratch record used while computing adjacency: an
// (sorted) vertex pair plus the owning triangle and edge slot.
type surfaceEdge struct {
	lo, hi    uint32
	faceIndex uint32
	edgeSlot  uint32
}

// Surface is an ordered sequence of surface triangles, representing either
// a Bowyer-Watson hole boundary or the convex hull.
type Surface struct {
	Faces []SurfaceTriangle
	edges []surfaceEdge
}

// Clear empties the surface.
func (s *Surface) Clear() {
	s.Faces = s.Faces[:0]
}

// Size returns the number of faces.
func (s *Surface) Size() int {
	return len(s.Faces)
}

// CalculateAdjacency computes neighbor links between the surface's
// triangles. It returns false (leaving neighbors unset) if the surface is
// not closed: any edge that does not appear in exactly two triangles.
//
// Grounded on the face-key adjacency pass in the teacher's
// Element3D.Connect3D (DG3D/tetrahedra/element3D.go): collect a key per
// face/edge, and on the second sighting of a key wire the two owners
// together reciprocally.
func (s *Surface) CalculateAdjacency() bool {
	s.edges = s.edges[:0]
	for fi := range s.Faces {
		f := &s.Faces[fi]
		for e := 0; e < 3; e++ {
			lo, hi := f.edge(e)
			s.edges = append(s.edges, surfaceEdge{lo: lo, hi: hi, faceIndex: uint32(fi), edgeSlot: uint32(e)})
		}
	}

	sort.Slice(s.edges, func(i, j int) bool {
		a, b := s.edges[i], s.edges[j]
		if a.lo != b.lo {
			return a.lo < b.lo
		}
		if a.hi != b.hi {
			return a.hi < b.hi
		}
		return a.faceIndex < b.faceIndex
	})

	// Each distinct edge key must appear in exactly two triangles: run
	// lengths other than 2 (including odd counts) mean a non-manifold or
	// open boundary edge.
	for i := 0; i < len(s.edges); {
		j := i + 1
		for j < len(s.edges) && s.edges[j].lo == s.edges[i].lo && s.edges[j].hi == s.edges[i].hi {
			j++
		}
		if j-i != 2 || s.edges[i].faceIndex == s.edges[i+1].faceIndex {
			return false
		}
		i = j
	}
	for i := 0; i < len(s.edges); i += 2 {
		a, b := s.edges[i], s.edges[i+1]
		s.Faces[a.faceIndex].Neighbors[a.edgeSlot] = b.faceIndex
		s.Faces[b.faceIndex].Neighbors[b.edgeSlot] = a.faceIndex
	}

	return true
}

// IsClosedSurface reports whether the surface is closed, without mutating
// any neighbor links.
func (s *Surface) IsClosedSurface() bool {
	saved := make([]SurfaceTriangle, len(s.Faces))
	copy(saved, s.Faces)
	ok := s.CalculateAdjacency()
	copy(s.Faces, saved)
	return ok
}
