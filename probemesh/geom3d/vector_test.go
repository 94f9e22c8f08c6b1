package geom3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -1, 2}

	assert.Equal(t, Vec3{5, 1, 5}, a.Add(b))
	assert.Equal(t, Vec3{-3, 3, 1}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float64(1*4+2*-1+3*2), a.Dot(b))
	assert.Equal(t, float64(1+4+9), a.LengthSquared())
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
}

func TestSphereDistance(t *testing.T) {
	s := Sphere{Center: Vec3{0, 0, 0}, Radius: 2}
	assert.InDelta(t, 0.0, s.Distance(Vec3{2, 0, 0}), 1e-9)
	assert.InDelta(t, -1.0, s.Distance(Vec3{1, 0, 0}), 1e-9)
	assert.InDelta(t, 3.0, s.Distance(Vec3{5, 0, 0}), 1e-9)
}

func TestCircumsphereUnitTetrahedron(t *testing.T) {
	p0 := Vec3{0, 0, 0}
	p1 := Vec3{1, 0, 0}
	p2 := Vec3{0, 1, 0}
	p3 := Vec3{0, 0, 1}

	sphere, err := Circumsphere(p0, p1, p2, p3)
	require.NoError(t, err)

	for _, p := range []Vec3{p0, p1, p2, p3} {
		assert.InDelta(t, 0.0, sphere.Distance(p), 1e-9)
	}
	assert.InDelta(t, 0.5, sphere.Center.X, 1e-9)
	assert.InDelta(t, 0.5, sphere.Center.Y, 1e-9)
	assert.InDelta(t, 0.5, sphere.Center.Z, 1e-9)
}

func TestCircumsphereDegenerateReturnsError(t *testing.T) {
	// Four coplanar (in fact collinear) points: no unique circumsphere.
	p0 := Vec3{0, 0, 0}
	p1 := Vec3{1, 0, 0}
	p2 := Vec3{2, 0, 0}
	p3 := Vec3{3, 0, 0}

	_, err := Circumsphere(p0, p1, p2, p3)
	assert.Error(t, err)
}
