package probemesh

import "fmt"

// ValidateAdjacency is the debug assertion from spec 4.D, "Adjacency
// validity check": every neighbor link must be reciprocal, the shared
// face's vertex set must match on both sides, and — when fullyConnected is
// set — no inner tetrahedron may carry a "none" neighbor at all, since once
// the outer shell is built every hull face of an inner tetrahedron is
// wired to an outer tetrahedron. It is not called from any production
// code path; callers that want a belt-and-suspenders check after Define
// call it from their own tests or diagnostics.
func (m *Mesh) ValidateAdjacency(fullyConnected bool) error {
	for i := range m.Tetrahedrons {
		t := &m.Tetrahedrons[i]
		for f := 0; f < 4; f++ {
			nb := t.Neighbors[f]
			if nb == NoIndex {
				// By the time the outer shell is built, every hull face of
				// an inner tetrahedron has been re-wired to an outer
				// tetrahedron (buildOuterTetrahedrons); a "none" neighbor
				// surviving on an inner face means the hull was never
				// closed over it.
				if fullyConnected && uint32(i) < m.NumInnerTetrahedrons {
					return fmt.Errorf("probemesh: inner tetrahedron %d face %d has no neighbor and is not on the hull", i, f)
				}
				continue
			}
			if int(nb) >= len(m.Tetrahedrons) {
				return fmt.Errorf("probemesh: tetrahedron %d face %d neighbor %d out of range", i, f, nb)
			}
			other := &m.Tetrahedrons[nb]
			g := other.GetNeighborFaceIndex(uint32(i))
			if g == 4 {
				return fmt.Errorf("probemesh: tetrahedron %d face %d points at %d, which does not point back", i, f, nb)
			}
			if !sameVertexSet(t.GetTriangleFaceIndices(f), other.GetTriangleFaceIndices(g)) {
				return fmt.Errorf("probemesh: tetrahedron %d face %d and tetrahedron %d face %d disagree on shared vertices", i, f, nb, g)
			}
		}
	}
	return nil
}

func sameVertexSet(a, b [3]uint32) bool {
	for _, av := range a {
		found := false
		for _, bv := range b {
			if av == bv {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
