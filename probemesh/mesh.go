// Package probemesh builds a Delaunay tetrahedralization of an arbitrary
// 3D point set, closes it with an outer shell of virtual tetrahedra that
// extends coverage to infinity, and answers point-location queries that
// return barycentric interpolation weights for any probe position in or
// around the convex hull.
package probemesh

import (
	"log"
)

// Mesh is a tetrahedralized point set ready for interpolation queries.
// Construction (Define) mutates the mesh exclusively; queries are pure
// reads safe for concurrent use by multiple callers, each owning its own
// hint variable (spec 5).
type Mesh struct {
	Vertices             []Vector3
	Tetrahedrons         []Tetrahedron
	HullNormals          []Vector3
	IgnoredVertices      []uint32
	NumInnerTetrahedrons uint32

	// DebugHighlightEdges accumulates the boundary edges of any hole or
	// hull surface that failed the closed-surface check, for visualization
	// (spec 7, "Adjacency diagnostic").
	DebugHighlightEdges [][2]uint32

	// Logger receives diagnostic messages during construction. Defaults
	// to log.Default() when nil, the way the teacher's mesh partitioner
	// logs unconditionally to the stdlib logger (DG3D/mesh/mesh_partitioner.go),
	// generalized one step so embedding code can redirect it.
	Logger *log.Logger
}

func (m *Mesh) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.Default()
}

// GetTetrahedronCircumsphere returns the circumsphere of the given
// tetrahedron's four real vertices, computed fresh in double precision.
// Only valid for inner tetrahedra.
func (m *Mesh) GetTetrahedronCircumsphere(tetIndex uint32) (Sphere, error) {
	t := &m.Tetrahedrons[tetIndex]
	return circumsphereOfTetrahedron(m.Vertices, t)
}

// GetInnerBarycentricCoords returns the barycentric weights of position
// within the given inner tetrahedron: coords = M*(p - p0), returned as
// (1 - sum(coords), coords.x, coords.y, coords.z).
func (m *Mesh) GetInnerBarycentricCoords(tetIndex uint32, position Vector3) Vector4 {
	t := &m.Tetrahedrons[tetIndex]
	base := m.Vertices[t.Indices[0]]
	c := t.Matrix.Apply(position.Sub(base))
	return Vector4{1 - c.X - c.Y - c.Z, c.X, c.Y, c.Z}
}

// GetBarycentricCoords dispatches to the inner or outer formula depending
// on whether tetIndex is below NumInnerTetrahedrons.
func (m *Mesh) GetBarycentricCoords(tetIndex uint32, position Vector3) Vector4 {
	if tetIndex < m.NumInnerTetrahedrons {
		return m.GetInnerBarycentricCoords(tetIndex, position)
	}
	return m.GetOuterBarycentricCoords(tetIndex, position)
}

// GetInterpolationFactors walks the tetrahedral graph, starting from
// tetIndexHint, until it finds a tetrahedron whose barycentric weights for
// position are all non-negative, or it runs out of steps/falls off the
// mesh. The hint is updated in place so a spatially coherent sequence of
// queries only needs to re-walk a short distance each time (spec 8,
// scenario 6).
func (m *Mesh) GetInterpolationFactors(position Vector3, tetIndexHint *uint32) Vector4 {
	weights, _ := m.getInterpolationFactorsCounted(position, tetIndexHint)
	return weights
}

// getInterpolationFactorsCounted is GetInterpolationFactors's walk, also
// returning the number of neighbor hops it took to get there. The hop
// count itself is not part of the public API; it exists so callers
// benchmarking the hint's warm-start behavior (spec 8, scenario 6) can
// observe walk length directly instead of inferring it from timing.
func (m *Mesh) getInterpolationFactorsCounted(position Vector3, tetIndexHint *uint32) (Vector4, int) {
	if len(m.Tetrahedrons) == 0 {
		return Vector4{}, 0
	}

	maxIters := uint32(len(m.Tetrahedrons))
	if *tetIndexHint >= maxIters {
		*tetIndexHint = 0
	}

	hops := 0
	for i := uint32(0); i < maxIters; i++ {
		weights := m.GetBarycentricCoords(*tetIndexHint, position)
		if weights.NonNegative() {
			return weights, hops
		}

		next := m.Tetrahedrons[*tetIndexHint].Neighbors[weights.mostNegativeSlot()]
		if next == NoIndex {
			// Walked off the mesh: return the last computed weights as-is.
			return weights, hops
		}
		*tetIndexHint = next
		hops++
	}
	return m.GetBarycentricCoords(*tetIndexHint, position), hops
}

// Interpolatable is the constraint a per-vertex container's element type
// must satisfy to be sampled with Sample: it must support weighted
// accumulation in place.
type Interpolatable[T any] interface {
	Scale(w float32) T
	Add(rhs T) T
}

// Sample interpolates container (indexed by real vertex id) at position,
// threading tetIndexHint through GetInterpolationFactors. Slot 3 only
// contributes when the located tetrahedron is inner (spec 4.E, "Sampling").
func Sample[T Interpolatable[T]](m *Mesh, container []T, position Vector3, tetIndexHint *uint32) T {
	var result T

	weights := m.GetInterpolationFactors(position, tetIndexHint)
	if *tetIndexHint >= uint32(len(m.Tetrahedrons)) {
		return result
	}

	t := &m.Tetrahedrons[*tetIndexHint]
	result = container[t.Indices[0]].Scale(weights.X)
	result = result.Add(container[t.Indices[1]].Scale(weights.Y))
	result = result.Add(container[t.Indices[2]].Scale(weights.Z))
	if *tetIndexHint < m.NumInnerTetrahedrons {
		result = result.Add(container[t.Indices[3]].Scale(weights.W))
	}
	return result
}
