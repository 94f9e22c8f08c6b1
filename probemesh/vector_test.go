package probemesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector3Arithmetic(t *testing.T) {
	a := Vector3{1, 2, 3}
	b := Vector3{4, -1, 2}

	assert.Equal(t, Vector3{5, 1, 5}, a.Add(b))
	assert.Equal(t, Vector3{-3, 3, 1}, a.Sub(b))
	assert.Equal(t, Vector3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(1*4+2*-1+3*2), a.Dot(b))
}

func TestVector3Cross(t *testing.T) {
	x := Vector3{1, 0, 0}
	y := Vector3{0, 1, 0}
	assert.Equal(t, Vector3{0, 0, 1}, x.Cross(y))
}

func TestVector3NormalizedZeroVector(t *testing.T) {
	assert.Equal(t, Vector3{}, Vector3{}.Normalized())
}

func TestVector3NormalizedUnitLength(t *testing.T) {
	v := Vector3{3, 4, 0}.Normalized()
	assert.InDelta(t, 1.0, float64(v.Length()), 1e-6)
}

func TestVector4NonNegative(t *testing.T) {
	assert.True(t, Vector4{0, 0.1, 0.2, 0.7}.NonNegative())
	assert.False(t, Vector4{-0.1, 0.1, 0.2, 0.8}.NonNegative())
}

func TestVector4Sum(t *testing.T) {
	assert.Equal(t, float32(1), Vector4{0.25, 0.25, 0.25, 0.25}.Sum())
}

func TestVector4MostNegativeSlot(t *testing.T) {
	assert.Equal(t, 2, Vector4{0.1, 0.2, -0.5, 0.1}.mostNegativeSlot())
	// Ties break toward the lowest index.
	assert.Equal(t, 0, Vector4{-0.1, -0.1, 0.5, 0.5}.mostNegativeSlot())
}
