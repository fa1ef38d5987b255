package material

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are immutable so one instance can be shared by many shapes
// and read concurrently by every render task.
type Material interface {
	// Scatter returns the attenuation and outgoing ray, or false if the ray is absorbed
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
	Normal    core.Vec3   // Unit surface normal, always facing against the incoming ray
	Material  Material    // Material of the hit object
	T         float64     // Parameter t along the ray
	FrontFace bool        // Whether ray hit the front face
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
