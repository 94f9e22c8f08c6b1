package probemesh

// buildHullSurface collects, for each inner tetrahedron, every face whose
// neighbor is NoIndex into a normalized surface triangle carrying its
// owning tetrahedron and face slot (spec 4.E, "Build hull surface").
func (m *Mesh) buildHullSurface() (*Surface, bool) {
	hull := &Surface{}
	for ti := uint32(0); ti < m.NumInnerTetrahedrons; ti++ {
		t := &m.Tetrahedrons[ti]
		for f := 0; f < 4; f++ {
			if t.Neighbors[f] != NoIndex {
				continue
			}
			face := t.GetTriangleFace(f, ti, uint32(f))
			face.Normalize(m.Vertices)
			hull.Faces = append(hull.Faces, face)
		}
	}
	ok := hull.CalculateAdjacency()
	return hull, ok
}

// calculateHullNormals accumulates, per real vertex, the sum of outward
// face normals of the hull triangles touching it (weighted by twice the
// triangle area, i.e. the unnormalized cross product), then renormalizes
// (spec 3, "Hull normal").
func (m *Mesh) calculateHullNormals(hull *Surface) {
	m.HullNormals = make([]Vector3, len(m.Vertices))
	for _, f := range hull.Faces {
		p1 := m.Vertices[f.Indices[0]]
		p2 := m.Vertices[f.Indices[1]]
		p3 := m.Vertices[f.Indices[2]]
		normal := p2.Sub(p1).Cross(p3.Sub(p1))
		for _, idx := range f.Indices {
			m.HullNormals[idx] = m.HullNormals[idx].Add(normal)
		}
	}
	for i := range m.HullNormals {
		m.HullNormals[i] = m.HullNormals[i].Normalized()
	}
}

// buildOuterTetrahedrons appends one outer pseudo-tetrahedron per hull
// triangle, selecting Infinity3/Infinity2 per spec 4.E's triple-product
// rule and wiring neighbor slot 3 back to the inner tetrahedron and
// slots 0..2 to the outer tetrahedra built from edge-adjacent hull
// triangles.
func (m *Mesh) buildOuterTetrahedrons(hull *Surface) {
	base := uint32(len(m.Tetrahedrons))
	for _, f := range hull.Faces {
		n0 := m.HullNormals[f.Indices[0]]
		n1 := m.HullNormals[f.Indices[1]]
		n2 := m.HullNormals[f.Indices[2]]

		sentinel := NoIndex // Infinity3
		if tripleProduct(n0, n1, n2) < epsilon {
			sentinel = Infinity2
		}

		m.Tetrahedrons = append(m.Tetrahedrons, Tetrahedron{
			Indices:   [4]uint32{f.Indices[0], f.Indices[1], f.Indices[2], sentinel},
			Neighbors: [4]uint32{NoIndex, NoIndex, NoIndex, f.TetIndex},
		})
	}

	for i, f := range hull.Faces {
		outerIdx := base + uint32(i)
		outer := &m.Tetrahedrons[outerIdx]
		// Edge e of the hull triangle (Indices[e], Indices[(e+1)%3]) is the
		// wall shared with the outer tetrahedron built from the face across
		// that edge; that wall is the face opposite vertex slot (e+2)%3 in
		// the new tetrahedron (Indices[0], Indices[1], Indices[2], sentinel).
		for e := 0; e < 3; e++ {
			outer.Neighbors[(e+2)%3] = base + f.Neighbors[e]
		}
		m.Tetrahedrons[f.TetIndex].Neighbors[f.TetFace] = outerIdx
	}
}

// tripleProduct returns the magnitude |a.Dot(b.Cross(c))|, used by the
// Infinity2/Infinity3 selection rule (spec 4.E): below epsilon, the three hull
// normals are coplanar with the hull face and the outer cell degenerates
// to a 2D extrusion.
func tripleProduct(a, b, c Vector3) float32 {
	v := a.Dot(b.Cross(c))
	if v < 0 {
		return -v
	}
	return v
}

// calculateOuterMatrix precomputes the affine map from a query point to
// the coefficients (a,b,c) of the extrapolation polynomial for an outer
// tetrahedron (spec 4.E, "Outer matrix").
//
// Derivation: write tk(t) = pk + t*nk for k=1,2,3 (the hull triangle
// extruded along its vertex normals). The constraint that position p is
// coplanar with (t1,t2,t3) is
//
//	((t2-t1) x (t3-t1)) . (p - t1) = 0
//
// Expanding with A = p2-p1, U = n2-n1, B = p3-p1, V = n3-n1, D = p-p1:
//
//	C0 = AxB, C1 = AxV + UxB, C2 = UxV
//	(C0 + t*C1 + t^2*C2) . (D - t*n1) = 0
//	-(C2.n1) t^3 + (C2.D - C1.n1) t^2 + (C1.D - C0.n1) t + C0.D = 0
//
// Dividing by the leading coefficient L = -(C2.n1) gives the monic cubic
// solveCubic expects; a,b,c are each affine in p (linear part via D,
// constant via the -p1 terms), which is exactly what Matrix3x4 stores.
// L equals minus the triple product of n1,n2,n3, so for an Infinity2 cell
// the cubic term vanishes and the matrix keeps the undivided coefficients
// of the quadratic that solveQuadratic expects.
func (m *Mesh) calculateOuterMatrix(t *Tetrahedron) {
	p1 := m.Vertices[t.Indices[0]]
	p2 := m.Vertices[t.Indices[1]]
	p3 := m.Vertices[t.Indices[2]]
	n1 := m.HullNormals[t.Indices[0]]
	n2 := m.HullNormals[t.Indices[1]]
	n3 := m.HullNormals[t.Indices[2]]

	A := p2.Sub(p1)
	B := p3.Sub(p1)
	U := n2.Sub(n1)
	V := n3.Sub(n1)

	c0 := A.Cross(B)
	c1 := A.Cross(V).Add(U.Cross(B))
	c2 := U.Cross(V)

	l := -c2.Dot(n1)
	if t.Indices[3] == Infinity2 {
		l = 1
	}

	rowA := c2.Scale(1 / l)
	rowB := c1.Scale(1 / l)
	rowC := c0.Scale(1 / l)

	constA := (-c2.Dot(p1) - c1.Dot(n1)) / l
	constB := (-c1.Dot(p1) - c0.Dot(n1)) / l
	constC := -c0.Dot(p1) / l

	t.Matrix = Matrix3x4{
		M: [3][3]float32{
			{rowA.X, rowA.Y, rowA.Z},
			{rowB.X, rowB.Y, rowB.Z},
			{rowC.X, rowC.Y, rowC.Z},
		},
		Translation: Vector3{constA, constB, constC},
	}
}

// GetOuterBarycentricCoords returns the extrapolated barycentric weights
// of position against an outer tetrahedron (spec 4.E, "Outer
// barycentric"). If position is on the inner side of the hull face, it
// returns the sentinel (0,0,0,-1) so the walker steps back across the
// hull.
func (m *Mesh) GetOuterBarycentricCoords(tetIndex uint32, position Vector3) Vector4 {
	t := &m.Tetrahedrons[tetIndex]
	p1 := m.Vertices[t.Indices[0]]
	p2 := m.Vertices[t.Indices[1]]
	p3 := m.Vertices[t.Indices[2]]
	normal := p2.Sub(p1).Cross(p3.Sub(p1))

	if normal.Dot(position.Sub(p1)) < 0 {
		return Vector4{0, 0, 0, -1}
	}

	poly := t.Matrix.Apply(position)
	var tParam float32
	if t.Indices[3] == NoIndex {
		tParam = solveCubic(poly)
	} else {
		tParam = solveQuadratic(poly)
	}

	n1 := m.HullNormals[t.Indices[0]]
	n2 := m.HullNormals[t.Indices[1]]
	n3 := m.HullNormals[t.Indices[2]]
	t1 := p1.Add(n1.Scale(tParam))
	t2 := p2.Add(n2.Scale(tParam))
	t3 := p3.Add(n3.Scale(tParam))

	coords := triangleBarycentricCoords(position, t1, t2, t3)
	return Vector4{coords.X, coords.Y, coords.Z, 0}
}
