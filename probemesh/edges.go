package probemesh

import (
	"github.com/james-bowman/sparse"
)

// CollectEdges returns the set of unique vertex-index pairs (sorted, lo
// first) that appear as any tetrahedron edge, for debug visualization
// (spec 6). Pulled in from original_source/TetrahedralMesh.h's
// CollectEdges, which the distillation's spec.md names but leaves
// unspecified.
func (m *Mesh) CollectEdges() [][2]uint32 {
	seen := make(map[[2]uint32]struct{})
	var out [][2]uint32

	addEdge := func(a, b uint32) {
		if a > b {
			a, b = b, a
		}
		key := [2]uint32{a, b}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	pairs := [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	for ti := range m.Tetrahedrons {
		t := &m.Tetrahedrons[ti]
		if uint32(ti) < m.NumInnerTetrahedrons {
			for _, p := range pairs {
				addEdge(t.Indices[p[0]], t.Indices[p[1]])
			}
		} else {
			// Outer tetrahedra carry a sentinel in vertex slot 3; only
			// the hull-triangle edges are real mesh edges.
			addEdge(t.Indices[0], t.Indices[1])
			addEdge(t.Indices[1], t.Indices[2])
			addEdge(t.Indices[2], t.Indices[0])
		}
	}
	return out
}

// EdgeGraph is a symmetric sparse adjacency matrix over vertex indices,
// built from CollectEdges. It is an additive convenience for callers that
// want a graph-library view of the mesh edges (e.g. for layout or
// visualization tooling) rather than a bare slice of pairs; CollectEdges
// itself still returns the plain pairs spec.md names.
//
// Grounded on the teacher's sparse matrix wrapper (utils/sparse.go's
// DOK), generalized from gocfd's stiffness-matrix assembly role to an
// unweighted adjacency role here.
func (m *Mesh) EdgeGraph() *sparse.DOK {
	n := len(m.Vertices)
	g := sparse.NewDOK(n, n)
	for _, e := range m.CollectEdges() {
		g.Set(int(e[0]), int(e[1]), 1)
		g.Set(int(e[1]), int(e[0]), 1)
	}
	return g
}
