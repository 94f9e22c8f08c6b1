// Package geom3d provides the double-precision geometry primitives used to
// keep the Delaunay construction numerically stable: a high-precision
// 3-vector and sphere, and a robust circumsphere solve.
package geom3d

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec3 is a 3-vector with double-precision components, used wherever
// single-precision input positions would otherwise accumulate error
// (circumsphere centers, hull normal accumulation intermediates).
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + rhs.
func (v Vec3) Add(rhs Vec3) Vec3 {
	return Vec3{v.X + rhs.X, v.Y + rhs.Y, v.Z + rhs.Z}
}

// Sub returns v - rhs.
func (v Vec3) Sub(rhs Vec3) Vec3 {
	return Vec3{v.X - rhs.X, v.Y - rhs.Y, v.Z - rhs.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and rhs.
func (v Vec3) Dot(rhs Vec3) float64 {
	return v.X*rhs.X + v.Y*rhs.Y + v.Z*rhs.Z
}

// Cross returns the cross product of v and rhs.
func (v Vec3) Cross(rhs Vec3) Vec3 {
	return Vec3{
		v.Y*rhs.Z - v.Z*rhs.Y,
		v.Z*rhs.X - v.X*rhs.Z,
		v.X*rhs.Y - v.Y*rhs.X,
	}
}

// LengthSquared returns the squared length of v.
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Sphere is a sphere with double-precision center and radius.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Distance returns the signed distance from p to the sphere surface:
// negative inside, positive outside.
func (s Sphere) Distance(p Vec3) float64 {
	distSquared := p.Sub(s.Center).LengthSquared()
	return math.Sqrt(distSquared) - s.Radius
}

// Circumsphere computes the unique sphere passing through four points,
// solving the linear system that expresses the center as equidistant
// from p0 and each of p1, p2, p3:
//
//	2*(pi - p0).c = |pi|^2 - |p0|^2   for i = 1, 2, 3
//
// in double precision via gonum, to avoid the loss of precision that a
// single-precision cofactor expansion would suffer on nearly coplanar or
// nearly cospherical inputs.
func Circumsphere(p0, p1, p2, p3 Vec3) (Sphere, error) {
	a := mat.NewDense(3, 3, []float64{
		2 * (p1.X - p0.X), 2 * (p1.Y - p0.Y), 2 * (p1.Z - p0.Z),
		2 * (p2.X - p0.X), 2 * (p2.Y - p0.Y), 2 * (p2.Z - p0.Z),
		2 * (p3.X - p0.X), 2 * (p3.Y - p0.Y), 2 * (p3.Z - p0.Z),
	})
	b := mat.NewVecDense(3, []float64{
		p1.LengthSquared() - p0.LengthSquared(),
		p2.LengthSquared() - p0.LengthSquared(),
		p3.LengthSquared() - p0.LengthSquared(),
	})

	var c mat.VecDense
	if err := c.SolveVec(a, b); err != nil {
		return Sphere{}, fmt.Errorf("circumsphere: degenerate tetrahedron: %w", err)
	}

	center := Vec3{c.AtVec(0), c.AtVec(1), c.AtVec(2)}
	return Sphere{Center: center, Radius: p0.Sub(center).Length()}, nil
}
