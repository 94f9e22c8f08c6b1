package probemesh

import (
	"fmt"

	"github.com/tijon1/rbfx/probemesh/geom3d"
)

// Sphere is the high-precision circumsphere returned by
// GetTetrahedronCircumsphere.
type Sphere = geom3d.Sphere

func toVec3(v Vector3) geom3d.Vec3 {
	return geom3d.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// circumsphereOfTetrahedron computes the circumsphere of t's four real
// vertices in double precision.
func circumsphereOfTetrahedron(vertices []Vector3, t *Tetrahedron) (Sphere, error) {
	sphere, err := circumsphereFromPoints(
		vertices[t.Indices[0]], vertices[t.Indices[1]], vertices[t.Indices[2]], vertices[t.Indices[3]])
	if err != nil {
		return Sphere{}, fmt.Errorf("circumsphere of tetrahedron %v: %w", t.Indices, err)
	}
	return sphere, nil
}

// circumsphereFromPoints is the point-based core of
// circumsphereOfTetrahedron, used by the Bowyer-Watson insertion loop to
// speculatively evaluate a candidate tetrahedron before its new vertex has
// been committed to the vertex array (spec 4.D, "Fill star").
func circumsphereFromPoints(p0, p1, p2, p3 Vector3) (Sphere, error) {
	return geom3d.Circumsphere(toVec3(p0), toVec3(p1), toVec3(p2), toVec3(p3))
}

// sphereDistance returns the signed distance from a single-precision
// position to a high-precision sphere.
func sphereDistance(s Sphere, p Vector3) float64 {
	return s.Distance(toVec3(p))
}
