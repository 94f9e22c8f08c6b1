package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tijon1/rbfx/probemesh"
)

func TestSaveLoadMeshFileRoundTrip(t *testing.T) {
	m := &probemesh.Mesh{}
	require.NoError(t, m.Define([]probemesh.Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
	}))

	path := filepath.Join(t.TempDir(), "mesh.bin")
	require.NoError(t, saveMeshFile(m, path))

	loaded, err := loadMeshFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Vertices, loaded.Vertices)
	assert.Equal(t, m.NumInnerTetrahedrons, loaded.NumInnerTetrahedrons)
}
