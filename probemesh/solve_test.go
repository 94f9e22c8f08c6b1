package probemesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolveCubicKnownRoots(t *testing.T) {
	// (t-1)(t-2)(t-3) = t^3 - 6t^2 + 11t - 6; most positive root is 3.
	root := solveCubic(Vector3{-6, 11, -6})
	assert.InDelta(t, 3.0, float64(root), 1e-4)
}

func TestSolveCubicSingleRealRoot(t *testing.T) {
	// t^3 + t + 1 = 0 has exactly one real root, near -0.6823.
	root := solveCubic(Vector3{0, 1, 1})
	assert.InDelta(t, -0.6823, float64(root), 1e-3)
}

func TestSolveQuadraticPicksLargerRoot(t *testing.T) {
	// (t-2)(t-5) = t^2 - 7t + 10.
	root := solveQuadratic(Vector3{1, -7, 10})
	assert.InDelta(t, 5.0, float64(root), 1e-5)

	// Leading coefficient negative: -(t-2)(t-5) = -t^2+7t-10.
	root = solveQuadratic(Vector3{-1, 7, -10})
	assert.InDelta(t, 5.0, float64(root), 1e-5)
}

func TestSolveQuadraticFallsBackToLinear(t *testing.T) {
	// a negligible: 2t - 4 = 0 -> t = 2.
	root := solveQuadratic(Vector3{0, 2, -4})
	assert.InDelta(t, 2.0, float64(root), 1e-5)
}

func TestTriangleBarycentricCoordsAtVertices(t *testing.T) {
	p1 := Vector3{0, 0, 0}
	p2 := Vector3{1, 0, 0}
	p3 := Vector3{0, 1, 0}

	c := triangleBarycentricCoords(p1, p1, p2, p3)
	assert.InDelta(t, 1.0, float64(c.X), 1e-6)
	assert.InDelta(t, 0.0, float64(c.Y), 1e-6)
	assert.InDelta(t, 0.0, float64(c.Z), 1e-6)

	centroid := p1.Add(p2).Add(p3).Scale(1.0 / 3.0)
	c = triangleBarycentricCoords(centroid, p1, p2, p3)
	assert.InDelta(t, 1.0/3.0, float64(c.X), 1e-6)
	assert.InDelta(t, 1.0/3.0, float64(c.Y), 1e-6)
	assert.InDelta(t, 1.0/3.0, float64(c.Z), 1e-6)
}

func TestTriangleBarycentricCoordsSumToOne(t *testing.T) {
	p1 := Vector3{0, 0, 0}
	p2 := Vector3{2, 0, 1}
	p3 := Vector3{0, 3, -1}
	c := triangleBarycentricCoords(Vector3{0.5, 0.5, 0}, p1, p2, p3)
	assert.InDelta(t, 1.0, float64(c.X+c.Y+c.Z), 1e-5)
}

func TestSolveCubicEquationRootCount(t *testing.T) {
	var roots [3]float64
	// t^3 - 6t^2 + 11t - 6 = (t-1)(t-2)(t-3): three distinct real roots.
	n := solveCubicEquation(&roots, -6, 11, -6, epsilon)
	assert.Equal(t, 3, n)

	got := roots[:n]
	for _, want := range []float64{1, 2, 3} {
		found := false
		for _, r := range got {
			if math.Abs(r-want) < 1e-3 {
				found = true
			}
		}
		assert.True(t, found, "expected root %v among %v", want, got)
	}
}
