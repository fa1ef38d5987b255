package geometry

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Point3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere. Negative radii are clamped to zero, and a
// zero-radius sphere is never hit.
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   math.Max(0, radius),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere strictly inside rayT
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// A point has no outward normal
	if s.Radius <= 0 {
		return nil, false
	}

	// Vector from ray origin to sphere center
	oc := s.Center.Subtract(ray.Origin)

	// Quadratic with b = -2h: at² - 2ht + c = 0
	a := ray.Direction.LengthSquared()
	h := ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := h*h - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (h - sqrtD) / a
	if !rayT.Surrounds(root) {
		root = (h + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
