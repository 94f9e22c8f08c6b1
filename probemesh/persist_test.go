package probemesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	m := &Mesh{}
	cube := []Vector3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
	}
	require.NoError(t, m.Define(cube))

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	loaded := &Mesh{}
	require.NoError(t, loaded.Load(&buf))

	assert.Equal(t, m.Vertices, loaded.Vertices)
	assert.Equal(t, m.Tetrahedrons, loaded.Tetrahedrons)
	assert.Equal(t, m.HullNormals, loaded.HullNormals)
	assert.Equal(t, m.NumInnerTetrahedrons, loaded.NumInnerTetrahedrons)
	assert.Equal(t, m.IgnoredVertices, loaded.IgnoredVertices)
}

func TestLoadTruncatedArchiveReportsError(t *testing.T) {
	m := &Mesh{}
	require.NoError(t, m.Define([]Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()/2])
	loaded := &Mesh{}
	err := loaded.Load(truncated)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "truncated"))
}

func TestSaveLoadEmptyMesh(t *testing.T) {
	m := &Mesh{}
	require.NoError(t, m.Define(nil))

	var buf bytes.Buffer
	require.NoError(t, m.Save(&buf))

	loaded := &Mesh{}
	require.NoError(t, loaded.Load(&buf))
	assert.Empty(t, loaded.Vertices)
	assert.Empty(t, loaded.Tetrahedrons)
}
