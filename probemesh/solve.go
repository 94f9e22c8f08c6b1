package probemesh

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// epsilon is the tight tolerance used for geometric equality, polynomial
// discriminants, and the Infinity2/Infinity3 selection rule (spec 9,
// "Tolerance strategy").
const epsilon = 1e-6

// epsilonLarge is the loose tolerance that decides how aggressively
// Bowyer-Watson insertion swallows neighboring tetrahedra (spec 9).
const epsilonLarge = 1e-4

// solveCubicEquation solves t^3 + a*t^2 + b*t + c = 0 via the
// trigonometric Cardano form, writing up to three real roots into result
// and returning how many it found (1, 2 or 3).
//
// Grounded on Urho3D's TetrahedralMesh.h SolveCubicEquation (see
// _examples/original_source), reproduced verbatim in semantics.
func solveCubicEquation(result *[3]float64, a, b, c, eps float64) int {
	a2 := a * a
	q := (a2 - 3*b) / 9
	r := (a*(2*a2-9*b) + 27*c) / 54
	r2 := r * r
	q3 := q * q * q

	if r2 <= q3+eps {
		t := r / math.Sqrt(q3)
		if t < -1 {
			t = -1
		}
		if t > 1 {
			t = 1
		}
		t = math.Acos(t)
		a /= 3
		q = -2 * math.Sqrt(q)
		result[0] = q*math.Cos(t/3) - a
		result[1] = q*math.Cos((t+2*math.Pi)/3) - a
		result[2] = q*math.Cos((t-2*math.Pi)/3) - a
		return 3
	}

	A := -math.Cbrt(math.Abs(r) + math.Sqrt(r2-q3))
	if r < 0 {
		A = -A
	}
	var B float64
	if A != 0 {
		B = q / A
	}

	a /= 3
	result[0] = (A + B) - a
	result[1] = -0.5*(A+B) - a
	result[2] = 0.5 * math.Sqrt(3) * (A - B)
	if math.Abs(result[2]) < eps {
		result[2] = result[1]
		return 2
	}
	return 1
}

// solveCubic returns the most positive real root of
// t^3 + abc.X*t^2 + abc.Y*t + abc.Z = 0, used by Infinity3 outer cells.
func solveCubic(abc Vector3) float32 {
	var roots [3]float64
	n := solveCubicEquation(&roots, float64(abc.X), float64(abc.Y), float64(abc.Z), epsilon)
	best := roots[0]
	for i := 1; i < n; i++ {
		if roots[i] > best {
			best = roots[i]
		}
	}
	return float32(best)
}

// solveQuadratic returns the most positive real root of
// abc.X*t^2 + abc.Y*t + abc.Z = 0 (falling back to the linear solve when
// abc.X is negligible), used by Infinity2 outer cells.
func solveQuadratic(abc Vector3) float32 {
	a, b, c := abc.X, abc.Y, abc.Z
	if float32(math.Abs(float64(a))) < epsilon {
		return -c / b
	}

	d := float64(b*b - 4*a*c)
	d = floats.Max([]float64{d, 0})
	root := float32(math.Sqrt(d))
	if a > 0 {
		return (-b + root) / (2 * a)
	}
	return (-b - root) / (2 * a)
}

// triangleBarycentricCoords returns the barycentric weights of position
// against triangle (p1,p2,p3), via the standard dot-product formulation.
// Degenerate (zero-area) triangles are excluded upstream by the
// Infinity2/Infinity3 selection rule, so the denominator is assumed
// non-zero (spec 4.E).
func triangleBarycentricCoords(position, p1, p2, p3 Vector3) Vector3 {
	v12 := p2.Sub(p1)
	v13 := p3.Sub(p1)
	v0 := position.Sub(p1)

	d00 := v12.Dot(v12)
	d01 := v12.Dot(v13)
	d11 := v13.Dot(v13)
	d20 := v0.Dot(v12)
	d21 := v0.Dot(v13)

	denom := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / denom
	w := (d00*d21 - d01*d20) / denom
	u := 1 - v - w
	return Vector3{u, v, w}
}
