package probemesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NoIndex is the sentinel used both for "no neighbor on this face" and,
// in vertex slot 3 of an outer tetrahedron, for Infinity3 (the polynomial
// selecting the cubic root solver). The two uses never collide: neighbor
// slots and vertex slots are read in different contexts.
const NoIndex uint32 = math.MaxUint32

// Infinity2 marks vertex slot 3 of an outer tetrahedron whose extrapolation
// polynomial degenerates to a quadratic.
const Infinity2 uint32 = math.MaxUint32 - 1

// NumSuperMeshVertices is the number of bounding-box corner vertices
// synthesized to bootstrap incremental Delaunay insertion.
const NumSuperMeshVertices = 8

// Tetrahedron is a single cell of the mesh: four vertex indices, four
// neighbor indices (neighbor k lies across the face opposite vertex k),
// and a precomputed matrix used by the barycentric formula for that cell.
type Tetrahedron struct {
	Indices   [4]uint32
	Neighbors [4]uint32
	Matrix    Matrix3x4
}

// Matrix3x4 is a 3x3 matrix plus a translation column, matching spec 3's
// "3x3 matrix (stored as 3x4 with a zero translation column or
// equivalent)". Inner tetrahedra carry a zero Translation; outer
// tetrahedra use it to hold the constant term of the affine map from a
// query point to extrapolation-polynomial coefficients (spec 4.E).
type Matrix3x4 struct {
	M           [3][3]float32
	Translation Vector3
}

// Apply returns M*v + Translation.
func (m Matrix3x4) Apply(v Vector3) Vector3 {
	return Vector3{
		m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z + m.Translation.X,
		m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z + m.Translation.Y,
		m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z + m.Translation.Z,
	}
}

// GetTriangleFaceIndices returns the three vertex indices obtained by
// dropping vertex slot faceIndex, preserving relative order.
func (t *Tetrahedron) GetTriangleFaceIndices(faceIndex int) [3]uint32 {
	var out [3]uint32
	j := 0
	for i := 0; i < 4; i++ {
		if i == faceIndex {
			continue
		}
		out[j] = t.Indices[i]
		j++
	}
	return out
}

// GetTriangleFace returns the surface triangle for faceIndex, carrying the
// unused (dropped) vertex index and a back-reference to (tetIndex,
// tetFace). Adjacency on the returned triangle is left unset.
func (t *Tetrahedron) GetTriangleFace(faceIndex int, tetIndex, tetFace uint32) SurfaceTriangle {
	return SurfaceTriangle{
		Indices:   t.GetTriangleFaceIndices(faceIndex),
		Neighbors: [3]uint32{NoIndex, NoIndex, NoIndex},
		UnusedIdx: t.Indices[faceIndex],
		TetIndex:  tetIndex,
		TetFace:   tetFace,
	}
}

// GetNeighborFaceIndex returns the face slot (0..3) whose neighbor equals
// otherTet, or 4 if t has no such neighbor.
func (t *Tetrahedron) GetNeighborFaceIndex(otherTet uint32) int {
	for i, n := range t.Neighbors {
		if n == otherTet {
			return i
		}
	}
	return 4
}

// HasNeighbor reports whether t lists otherTet as a neighbor.
func (t *Tetrahedron) HasNeighbor(otherTet uint32) bool {
	return t.GetNeighborFaceIndex(otherTet) < 4
}

// CalculateInnerMatrix computes the matrix used by GetInnerBarycentricCoords:
// the inverse of the 3x3 matrix whose columns are p1-p0, p2-p0, p3-p0.
func (t *Tetrahedron) CalculateInnerMatrix(vertices []Vector3) error {
	matrix, err := calculateInnerMatrixFromPoints(
		vertices[t.Indices[0]], vertices[t.Indices[1]], vertices[t.Indices[2]], vertices[t.Indices[3]])
	if err != nil {
		return fmt.Errorf("tetrahedron %v: %w", t.Indices, err)
	}
	t.Matrix = matrix
	return nil
}

// calculateInnerMatrixFromPoints is the point-based core of
// CalculateInnerMatrix, used by the Bowyer-Watson insertion loop to
// speculatively evaluate a candidate tetrahedron before its new vertex has
// been committed to the vertex array (spec 4.D, "Fill star"): a singular
// result here means the new vertex is coplanar with the hole face, which
// the insertion loop treats as a reason to ignore the vertex rather than
// commit a degenerate cell.
func calculateInnerMatrixFromPoints(p0, p1, p2, p3 Vector3) (Matrix3x4, error) {
	u1 := p1.Sub(p0)
	u2 := p2.Sub(p0)
	u3 := p3.Sub(p0)

	a := mat.NewDense(3, 3, []float64{
		float64(u1.X), float64(u2.X), float64(u3.X),
		float64(u1.Y), float64(u2.Y), float64(u3.Y),
		float64(u1.Z), float64(u2.Z), float64(u3.Z),
	})
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		return Matrix3x4{}, fmt.Errorf("singular inner matrix: %w", err)
	}

	var m Matrix3x4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.M[i][j] = float32(inv.At(i, j))
		}
	}
	return m, nil
}
