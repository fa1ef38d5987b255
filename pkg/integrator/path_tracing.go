package integrator

import (
	"math"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting the surface they leave
const shadowAcneEpsilon = 0.001

// Sky colors at the horizon and the zenith
var (
	skyBottom = core.NewColor(1.0, 1.0, 1.0)
	skyTop    = core.NewColor(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing against a sky background
type PathTracingIntegrator struct {
	world geometry.Shape
}

// NewPathTracingIntegrator creates a new path tracing integrator for world
func NewPathTracingIntegrator(world geometry.Shape) *PathTracingIntegrator {
	return &PathTracingIntegrator{world: world}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Color{}
	}

	hit, isHit := pt.world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return SkyColor(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		return core.Color{}
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, depth-1, sampler))
}

// SkyColor blends white at the bottom to light blue at the top by the ray's
// normalized vertical direction
func SkyColor(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyBottom.Multiply(1.0 - a).Add(skyTop.Multiply(a))
}
