package material

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// unitNormalTolerance bounds |normal|² - 1 for a well-formed hit record
const unitNormalTolerance = 1e-6

// Material interface for objects that can scatter rays.
// Scatter returns false when the ray is absorbed.
type Material interface {
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray   // The scattered ray
	Attenuation core.Color // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Point3 // Point of intersection
	Normal    core.Vec3   // Unit surface normal, facing against the incoming ray
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether ray hit the front face
	Material  Material    // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face.
// outwardNormal must be unit length.
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// mustHaveUnitNormal panics on a hit record built with a non-unit normal
func mustHaveUnitNormal(hit HitRecord) {
	if math.Abs(hit.Normal.LengthSquared()-1) > unitNormalTolerance {
		panic(fmt.Sprintf("material: scatter with non-unit normal %v", hit.Normal))
	}
}
