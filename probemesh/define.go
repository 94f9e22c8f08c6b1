package probemesh

import "sort"

// superMeshMargin inflates the bounding box of the input positions before
// tetrahedralizing it into the super-mesh, so that every inserted vertex
// stays well clear of the box's own surface and incremental insertion never
// has to walk across a "none" neighbor (spec 4.D, "Super-mesh").
const superMeshMargin = 8.0

// delaunayContext carries the scratch state of a single Define call: the
// circumsphere of every live tetrahedron (inner and super-mesh, never
// outer) and a parallel removed-flag array. Both grow in step with
// m.Tetrahedrons as new cells are appended during insertion and are
// discarded once Define returns (spec 5, "scratch buffers...released on
// return").
type delaunayContext struct {
	circumspheres []Sphere
	removed       []bool
}

func (ctx *delaunayContext) insideCircumsphere(tetIndex uint32, p Vector3) bool {
	return sphereDistance(ctx.circumspheres[tetIndex], p) < epsilonLarge
}

// Define builds a Delaunay tetrahedralization of positions and closes it
// with an outer shell, replacing any mesh previously held by m (spec 6,
// "Construction entry point"). Vertices that cannot be inserted without
// breaking the star-shaped hole invariant are recorded in
// m.IgnoredVertices by their index into positions, rather than aborting
// the whole build (spec 7, "Ignored-vertex").
//
// Define returns ErrMalformedHullSurface if the convex hull extracted from
// the finished inner mesh fails the closed-surface check; the mesh is
// still fully built and usable, just potentially degraded at the hull
// (spec 7, "Adjacency diagnostic").
func (m *Mesh) Define(positions []Vector3) error {
	m.Vertices = nil
	m.Tetrahedrons = nil
	m.HullNormals = nil
	m.IgnoredVertices = nil
	m.NumInnerTetrahedrons = 0
	m.DebugHighlightEdges = nil

	if len(positions) <= 1 {
		return nil
	}

	boxMin, boxMax := boundingBoxOf(positions)
	m.initializeSuperMesh(boxMin, boxMax)

	ctx := &delaunayContext{
		removed:       make([]bool, len(m.Tetrahedrons)),
		circumspheres: make([]Sphere, len(m.Tetrahedrons)),
	}
	for i := range m.Tetrahedrons {
		t := &m.Tetrahedrons[i]
		sphere, err := circumsphereOfTetrahedron(m.Vertices, t)
		if err != nil {
			return err
		}
		ctx.circumspheres[i] = sphere
		if err := t.CalculateInnerMatrix(m.Vertices); err != nil {
			return err
		}
	}

	for i, p := range positions {
		if !m.insertVertex(ctx, p) {
			m.IgnoredVertices = append(m.IgnoredVertices, uint32(i))
		}
	}

	m.disconnectSuperMeshTetrahedrons(ctx)
	m.ensureConnectivity(ctx)
	m.filterSurface(ctx)
	m.compactAndDropSuperMesh(ctx)

	m.NumInnerTetrahedrons = uint32(len(m.Tetrahedrons))
	hull, hullClosed := m.buildHullSurface()
	if !hullClosed {
		m.logger().Printf("probemesh: hull surface failed closed-surface check; mesh may be degraded")
		m.DebugHighlightEdges = append(m.DebugHighlightEdges, openEdgesOf(hull)...)
	}

	m.calculateHullNormals(hull)
	m.buildOuterTetrahedrons(hull)
	for i := int(m.NumInnerTetrahedrons); i < len(m.Tetrahedrons); i++ {
		m.calculateOuterMatrix(&m.Tetrahedrons[i])
	}

	if !hullClosed {
		return ErrMalformedHullSurface
	}
	return nil
}

// boundingBoxOf returns the axis-aligned bounds of positions.
func boundingBoxOf(positions []Vector3) (min, max Vector3) {
	min, max = positions[0], positions[0]
	for _, p := range positions[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// openEdgesOf returns the edges of surface that did not pair up evenly
// during CalculateAdjacency, for the debug-highlight list (spec 7).
func openEdgesOf(s *Surface) [][2]uint32 {
	var out [][2]uint32
	counts := make(map[[2]uint32]int)
	for fi := range s.Faces {
		f := &s.Faces[fi]
		for e := 0; e < 3; e++ {
			lo, hi := f.edge(e)
			counts[[2]uint32{lo, hi}]++
		}
	}
	for edge, n := range counts {
		if n != 2 {
			out = append(out, edge)
		}
	}
	return out
}

// initializeSuperMesh appends the 8 super-mesh corner vertices and
// tetrahedralizes the inflated bounding box into 6 tetrahedra sharing the
// main diagonal between opposite corners, fully wired with adjacency
// (spec 4.D, "Super-mesh").
func (m *Mesh) initializeSuperMesh(boxMin, boxMax Vector3) {
	center := boxMin.Add(boxMax).Scale(0.5)
	half := boxMax.Sub(boxMin).Scale(0.5)
	if half.X < 1e-3 {
		half.X = 1e-3
	}
	if half.Y < 1e-3 {
		half.Y = 1e-3
	}
	if half.Z < 1e-3 {
		half.Z = 1e-3
	}
	half = half.Scale(superMeshMargin)

	lo := center.Sub(half)
	hi := center.Add(half)

	var corners [NumSuperMeshVertices]Vector3
	for i := 0; i < NumSuperMeshVertices; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		corners[i] = p
	}
	m.Vertices = append(m.Vertices, corners[:]...)

	// The 6 remaining corners of the cube, ordered so that consecutive
	// entries are connected by a cube edge, form a hexagonal ring around
	// the main diagonal between corner 0 and corner 7. Each tetrahedron is
	// the main diagonal plus one consecutive pair from the ring.
	ring := [6]uint32{1, 3, 2, 6, 4, 5}
	base := uint32(len(m.Tetrahedrons))
	for i := 0; i < 6; i++ {
		a := ring[i]
		b := ring[(i+1)%6]
		m.Tetrahedrons = append(m.Tetrahedrons, Tetrahedron{
			Indices:   [4]uint32{0, a, b, 7},
			Neighbors: [4]uint32{NoIndex, NoIndex, NoIndex, NoIndex},
		})
	}
	wireTetAdjacencyBruteForce(m.Tetrahedrons[base:base+6], base)
}

// wireTetAdjacencyBruteForce sets reciprocal neighbor links between every
// pair of tetrahedra in tets that share a face, leaving unmatched faces at
// NoIndex. base is the absolute index of tets[0] within the mesh's
// tetrahedron array, since Neighbors are always absolute indices.
func wireTetAdjacencyBruteForce(tets []Tetrahedron, base uint32) {
	faceKey := func(t *Tetrahedron, f int) [3]uint32 {
		k := t.GetTriangleFaceIndices(f)
		sort.Slice(k[:], func(i, j int) bool { return k[i] < k[j] })
		return k
	}
	n := len(tets)
	for i := 0; i < n; i++ {
		for f := 0; f < 4; f++ {
			if tets[i].Neighbors[f] != NoIndex {
				continue
			}
			key := faceKey(&tets[i], f)
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				for g := 0; g < 4; g++ {
					if faceKey(&tets[j], g) == key {
						tets[i].Neighbors[f] = base + uint32(j)
						tets[j].Neighbors[g] = base + uint32(i)
					}
				}
			}
		}
	}
}

// findContainingTetrahedron walks the live (non-removed) tetrahedra via
// signed barycentric neighbor-stepping, starting from the first
// non-removed tetrahedron, to locate the cell that geometrically contains
// p. It is the construction-time analog of GetInterpolationFactors,
// restricted to tetrahedra still standing (spec 4.D, step 1, "Locate").
func (m *Mesh) findContainingTetrahedron(ctx *delaunayContext, p Vector3) uint32 {
	seed := NoIndex
	for i := range m.Tetrahedrons {
		if !ctx.removed[i] {
			seed = uint32(i)
			break
		}
	}
	if seed == NoIndex {
		return NoIndex
	}

	cur := seed
	maxIters := uint32(len(m.Tetrahedrons))
	for i := uint32(0); i < maxIters; i++ {
		weights := m.GetInnerBarycentricCoords(cur, p)
		if weights.NonNegative() {
			return cur
		}
		next := m.Tetrahedrons[cur].Neighbors[weights.mostNegativeSlot()]
		if next == NoIndex || ctx.removed[next] {
			return cur
		}
		cur = next
	}
	return cur
}

// insertVertex attempts one step of Bowyer-Watson insertion for p,
// reporting whether it succeeded. A p that coincides with a vertex of the
// containing tetrahedron is rejected. On failure the vertices, tetrahedra
// and ctx are left exactly as they were found (spec 5, "rolls the mesh
// back to its pre-insertion state"); a hole that fails the closed-surface
// check adds its open edges to m.DebugHighlightEdges.
func (m *Mesh) insertVertex(ctx *delaunayContext, p Vector3) bool {
	seed := m.findContainingTetrahedron(ctx, p)
	if seed == NoIndex {
		return false
	}
	for _, idx := range m.Tetrahedrons[seed].Indices {
		if p.Sub(m.Vertices[idx]).Length() < epsilon {
			return false
		}
	}

	removedTets := m.collectCircumsphereViolators(ctx, seed, p)
	if len(removedTets) == 0 {
		return false
	}

	hole, closed := m.findHoleSurface(ctx, removedTets)
	if !closed {
		m.DebugHighlightEdges = append(m.DebugHighlightEdges, openEdgesOf(hole)...)
		for _, idx := range removedTets {
			ctx.removed[idx] = false
		}
		return false
	}

	sort.Slice(removedTets, func(i, j int) bool { return removedTets[i] < removedTets[j] })

	origLen := uint32(len(m.Tetrahedrons))
	newTetIdx := starTetrahedronSlots(hole, removedTets, origLen)

	tets, spheres, ok := m.buildStarTetrahedra(hole, newTetIdx, p)
	if !ok {
		for _, idx := range removedTets {
			ctx.removed[idx] = false
		}
		return false
	}

	newVertexIndex := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, p)
	m.commitStarTetrahedra(ctx, hole, newTetIdx, origLen, tets, spheres, newVertexIndex)
	return true
}

// collectCircumsphereViolators expands breadth-first from seed across
// neighbor links, marking every tetrahedron whose circumsphere contains p
// as removed, and returns their indices (spec 4.D, step 1, "Expand
// greedily from the first containing tetrahedron by breadth across
// neighbors").
func (m *Mesh) collectCircumsphereViolators(ctx *delaunayContext, seed uint32, p Vector3) []uint32 {
	var removedTets []uint32
	visited := map[uint32]bool{seed: true}
	queue := []uint32{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !ctx.insideCircumsphere(cur, p) {
			continue
		}
		ctx.removed[cur] = true
		removedTets = append(removedTets, cur)
		for _, nb := range m.Tetrahedrons[cur].Neighbors {
			if nb == NoIndex || ctx.removed[nb] || visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, nb)
		}
	}
	return removedTets
}

// findHoleSurface collects, for every removed tetrahedron's face whose
// neighbor survives (or is absent), a normalized surface triangle, then
// computes its adjacency. A face with a surviving neighbor is taken from
// the surviving side and carries a back-reference (TetIndex, TetFace) to
// that tetrahedron and the face slot that must be re-wired once the hole
// is refilled; a face with no neighbor is taken from the removed side and
// carries TetIndex NoIndex (spec 4.D, step 2, "Extract hole surface").
func (m *Mesh) findHoleSurface(ctx *delaunayContext, removedTets []uint32) (*Surface, bool) {
	hole := &Surface{}
	for _, ti := range removedTets {
		t := &m.Tetrahedrons[ti]
		for f := 0; f < 4; f++ {
			nb := t.Neighbors[f]
			if nb == NoIndex {
				face := t.GetTriangleFace(f, NoIndex, NoIndex)
				face.Normalize(m.Vertices)
				hole.Faces = append(hole.Faces, face)
				continue
			}
			if ctx.removed[nb] {
				continue
			}
			survivor := &m.Tetrahedrons[nb]
			g := survivor.GetNeighborFaceIndex(ti)
			if g == 4 {
				continue
			}
			face := survivor.GetTriangleFace(g, nb, uint32(g))
			face.Normalize(m.Vertices)
			hole.Faces = append(hole.Faces, face)
		}
	}
	if len(hole.Faces) == 0 {
		return hole, false
	}
	ok := hole.CalculateAdjacency()
	return hole, ok
}

// starTetrahedronSlots assigns a tetrahedron-array slot to each hole face:
// the sorted removed-tetrahedron indices first (reused in place), then
// fresh slots starting at origLen for any remaining faces (spec 4.D, step
// 3, "Reuse the indices of removed tetrahedra...before allocating past
// the end").
func starTetrahedronSlots(hole *Surface, removedTets []uint32, origLen uint32) []uint32 {
	slots := make([]uint32, len(hole.Faces))
	next := origLen
	for i := range hole.Faces {
		if i < len(removedTets) {
			slots[i] = removedTets[i]
		} else {
			slots[i] = next
			next++
		}
	}
	return slots
}

// buildStarTetrahedra speculatively evaluates the geometry of the star of
// new tetrahedra fanning out from p to each hole face, without mutating
// the mesh. It fails (returning ok=false) if any candidate tetrahedron is
// degenerate (p coplanar with a hole face), the condition under which the
// caller must roll back and ignore the vertex rather than commit a
// zero-volume cell (spec 4.D, step 4).
func (m *Mesh) buildStarTetrahedra(hole *Surface, newTetIdx []uint32, p Vector3) ([]Tetrahedron, []Sphere, bool) {
	tets := make([]Tetrahedron, len(hole.Faces))
	spheres := make([]Sphere, len(hole.Faces))

	for i, face := range hole.Faces {
		p0 := m.Vertices[face.Indices[0]]
		p1 := m.Vertices[face.Indices[1]]
		p2 := m.Vertices[face.Indices[2]]

		matrix, err := calculateInnerMatrixFromPoints(p0, p1, p2, p)
		if err != nil {
			return nil, nil, false
		}
		sphere, err := circumsphereFromPoints(p0, p1, p2, p)
		if err != nil {
			return nil, nil, false
		}

		var nt Tetrahedron
		nt.Indices = [4]uint32{face.Indices[0], face.Indices[1], face.Indices[2], 0}
		nt.Neighbors[3] = face.TetIndex
		// See outer.go's buildOuterTetrahedrons for the edge-to-slot
		// derivation: edge e's wall is opposite vertex slot (e+2)%3.
		for e := 0; e < 3; e++ {
			nt.Neighbors[(e+2)%3] = newTetIdx[face.Neighbors[e]]
		}
		nt.Matrix = matrix

		tets[i] = nt
		spheres[i] = sphere
	}
	return tets, spheres, true
}

// commitStarTetrahedra writes the star of new tetrahedra built by
// buildStarTetrahedra into the mesh at the slots chosen by
// starTetrahedronSlots, re-wires each surviving neighbor's link back into
// the hole, and grows ctx in step with any freshly appended slots.
func (m *Mesh) commitStarTetrahedra(
	ctx *delaunayContext, hole *Surface, newTetIdx []uint32, origLen uint32,
	tets []Tetrahedron, spheres []Sphere, newVertexIndex uint32,
) {
	for i := range tets {
		tets[i].Indices[3] = newVertexIndex
	}
	for i, idx := range newTetIdx {
		if idx >= origLen {
			m.Tetrahedrons = append(m.Tetrahedrons, tets[i])
			ctx.removed = append(ctx.removed, false)
			ctx.circumspheres = append(ctx.circumspheres, spheres[i])
		} else {
			m.Tetrahedrons[idx] = tets[i]
			ctx.removed[idx] = false
			ctx.circumspheres[idx] = spheres[i]
		}
	}
	for i, face := range hole.Faces {
		if face.TetIndex == NoIndex {
			continue
		}
		m.Tetrahedrons[face.TetIndex].Neighbors[face.TetFace] = newTetIdx[i]
	}
}

// disconnectSuperMeshTetrahedrons marks every tetrahedron incident on a
// super-mesh vertex as removed and severs incoming neighbor links from the
// surviving side (spec 4.D, post-insertion clean-up, step 1).
func (m *Mesh) disconnectSuperMeshTetrahedrons(ctx *delaunayContext) {
	for i := range m.Tetrahedrons {
		t := &m.Tetrahedrons[i]
		for _, idx := range t.Indices {
			if idx < NumSuperMeshVertices {
				ctx.removed[i] = true
				break
			}
		}
	}
	severDanglingNeighbors(m.Tetrahedrons, ctx.removed)
}

// severDanglingNeighbors clears any neighbor slot of a surviving
// tetrahedron that points at a removed one.
func severDanglingNeighbors(tets []Tetrahedron, removed []bool) {
	for i := range tets {
		if removed[i] {
			continue
		}
		t := &tets[i]
		for f := 0; f < 4; f++ {
			if t.Neighbors[f] != NoIndex && removed[t.Neighbors[f]] {
				t.Neighbors[f] = NoIndex
			}
		}
	}
}

// ensureConnectivity flood-fills from the lowest-indexed surviving
// tetrahedron across neighbor links and marks any surviving tetrahedron
// that wasn't reached as removed, so a mesh left with multiple
// disconnected components after super-mesh removal keeps only the
// component reachable from that seed (spec 4.D, clean-up, step 2).
func (m *Mesh) ensureConnectivity(ctx *delaunayContext) {
	seed := NoIndex
	for i := range m.Tetrahedrons {
		if !ctx.removed[i] {
			seed = uint32(i)
			break
		}
	}
	if seed == NoIndex {
		return
	}

	reached := make([]bool, len(m.Tetrahedrons))
	reached[seed] = true
	queue := []uint32{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range m.Tetrahedrons[cur].Neighbors {
			if nb == NoIndex || ctx.removed[nb] || reached[nb] {
				continue
			}
			reached[nb] = true
			queue = append(queue, nb)
		}
	}

	for i := range m.Tetrahedrons {
		if !ctx.removed[i] && !reached[i] {
			ctx.removed[i] = true
		}
	}
	severDanglingNeighbors(m.Tetrahedrons, ctx.removed)
}

// filterSurface detects pairs of surviving tetrahedra that both sit on the
// current surface (have at least one "none" neighbor) yet share only an
// edge rather than a face, and removes them, repeating until stable or
// until a bounded retry count is hit (spec 4.D, clean-up step 3; spec 9's
// recommended bound of 2*|tetrahedra| against non-termination on
// adversarial inputs).
func (m *Mesh) filterSurface(ctx *delaunayContext) {
	maxRetries := 2 * len(m.Tetrahedrons)
	for retry := 0; retry < maxRetries; retry++ {
		var surface []uint32
		for i := range m.Tetrahedrons {
			if ctx.removed[i] {
				continue
			}
			for _, nb := range m.Tetrahedrons[i].Neighbors {
				if nb == NoIndex {
					surface = append(surface, uint32(i))
					break
				}
			}
		}

		toRemove := map[uint32]bool{}
		for a := 0; a < len(surface); a++ {
			ta := surface[a]
			for b := a + 1; b < len(surface); b++ {
				tb := surface[b]
				if m.Tetrahedrons[ta].HasNeighbor(tb) {
					continue
				}
				if sharedVertexCount(&m.Tetrahedrons[ta], &m.Tetrahedrons[tb]) == 2 {
					toRemove[ta] = true
					toRemove[tb] = true
				}
			}
		}
		if len(toRemove) == 0 {
			return
		}
		for idx := range toRemove {
			ctx.removed[idx] = true
		}
		severDanglingNeighbors(m.Tetrahedrons, ctx.removed)
	}
}

// sharedVertexCount returns how many vertex indices a and b have in
// common.
func sharedVertexCount(a, b *Tetrahedron) int {
	count := 0
	for _, ai := range a.Indices {
		for _, bi := range b.Indices {
			if ai == bi {
				count++
				break
			}
		}
	}
	return count
}

// compactAndDropSuperMesh removes every tetrahedron still marked removed,
// remaps neighbor indices to the compacted array, and drops the 8
// super-mesh vertices, remapping every remaining vertex reference down by
// that count so real vertex 0 starts at index 0 (spec 4.D, clean-up,
// step 4).
func (m *Mesh) compactAndDropSuperMesh(ctx *delaunayContext) {
	remap := make([]uint32, len(m.Tetrahedrons))
	kept := make([]Tetrahedron, 0, len(m.Tetrahedrons))
	for i := range m.Tetrahedrons {
		if ctx.removed[i] {
			remap[i] = NoIndex
			continue
		}
		remap[i] = uint32(len(kept))
		kept = append(kept, m.Tetrahedrons[i])
	}
	for i := range kept {
		t := &kept[i]
		for f := 0; f < 4; f++ {
			if t.Neighbors[f] != NoIndex {
				t.Neighbors[f] = remap[t.Neighbors[f]]
			}
		}
		for v := 0; v < 4; v++ {
			t.Indices[v] -= NumSuperMeshVertices
		}
	}
	m.Tetrahedrons = kept

	realVertices := make([]Vector3, len(m.Vertices)-NumSuperMeshVertices)
	copy(realVertices, m.Vertices[NumSuperMeshVertices:])
	m.Vertices = realVertices
}
