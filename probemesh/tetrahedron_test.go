package probemesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTriangleFaceIndicesDropsSlotPreservingOrder(t *testing.T) {
	tet := Tetrahedron{Indices: [4]uint32{10, 20, 30, 40}}
	assert.Equal(t, [3]uint32{20, 30, 40}, tet.GetTriangleFaceIndices(0))
	assert.Equal(t, [3]uint32{10, 30, 40}, tet.GetTriangleFaceIndices(1))
	assert.Equal(t, [3]uint32{10, 20, 40}, tet.GetTriangleFaceIndices(2))
	assert.Equal(t, [3]uint32{10, 20, 30}, tet.GetTriangleFaceIndices(3))
}

func TestGetTriangleFaceCarriesBackReferences(t *testing.T) {
	tet := Tetrahedron{Indices: [4]uint32{10, 20, 30, 40}}
	face := tet.GetTriangleFace(1, 7, 1)
	assert.Equal(t, [3]uint32{10, 30, 40}, face.Indices)
	assert.Equal(t, uint32(20), face.UnusedIdx)
	assert.Equal(t, uint32(7), face.TetIndex)
	assert.Equal(t, uint32(1), face.TetFace)
	assert.Equal(t, [3]uint32{NoIndex, NoIndex, NoIndex}, face.Neighbors)
}

func TestGetNeighborFaceIndex(t *testing.T) {
	tet := Tetrahedron{Neighbors: [4]uint32{5, NoIndex, 9, 5}}
	assert.Equal(t, 0, tet.GetNeighborFaceIndex(5))
	assert.Equal(t, 2, tet.GetNeighborFaceIndex(9))
	assert.Equal(t, 4, tet.GetNeighborFaceIndex(100))
}

func TestHasNeighbor(t *testing.T) {
	tet := Tetrahedron{Neighbors: [4]uint32{5, NoIndex, 9, NoIndex}}
	assert.True(t, tet.HasNeighbor(9))
	assert.False(t, tet.HasNeighbor(3))
}

func TestCalculateInnerMatrixUnitTetrahedron(t *testing.T) {
	vertices := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}
	tet := Tetrahedron{Indices: [4]uint32{0, 1, 2, 3}}
	require.NoError(t, tet.CalculateInnerMatrix(vertices))

	coords := tet.Matrix.Apply(Vector3{0.25, 0.25, 0.25}.Sub(vertices[0]))
	assert.InDelta(t, 0.25, float64(coords.X), 1e-6)
	assert.InDelta(t, 0.25, float64(coords.Y), 1e-6)
	assert.InDelta(t, 0.25, float64(coords.Z), 1e-6)
}

func TestCalculateInnerMatrixDegenerateReturnsError(t *testing.T) {
	vertices := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0},
	}
	tet := Tetrahedron{Indices: [4]uint32{0, 1, 2, 3}}
	err := tet.CalculateInnerMatrix(vertices)
	assert.Error(t, err)
}
