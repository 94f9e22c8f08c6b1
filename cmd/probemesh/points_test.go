package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVPoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("# a comment\n0,0,0\n1 0 0\n0,1,0\n\n0 0 1\n"), 0o644))

	points, err := loadPoints(path, "csv")
	require.NoError(t, err)
	require.Len(t, points, 4)
	assert.Equal(t, float32(1), points[1].X)
	assert.Equal(t, float32(1), points[2].Y)
	assert.Equal(t, float32(1), points[3].Z)
}

func TestLoadCSVPointsRejectsBadRow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0\n"), 0o644))

	_, err := loadPoints(path, "csv")
	assert.Error(t, err)
}

func TestLoadYAMLPoints(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points:\n  - [0, 0, 0]\n  - [1, 0, 0]\n"), 0o644))

	points, err := loadPoints(path, "yaml")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, float32(1), points[1].X)
}

func TestLoadPointsUnsupportedFormat(t *testing.T) {
	_, err := loadPoints("whatever", "json")
	assert.Error(t, err)
}
