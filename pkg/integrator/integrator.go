package integrator

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations are shared by every render task and must not hold per-ray state.
type Integrator interface {
	// RayColor returns the radiance carried back along ray with depth bounces left
	RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Color
}
