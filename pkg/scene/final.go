package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// Small spheres within this distance of the metal ball's base are skipped
var finalSceneClearing = core.NewVec3(4, 0.2, 0)

// NewFinalScene creates the random-spheres scene: a gray ground, a 22x22 grid
// of jittered small spheres and three large feature spheres. The sampler
// decides every small sphere's position and material, so equal seeds give
// equal scenes.
func NewFinalScene(sampler core.Sampler) *Scene {
	world := geometry.NewHittableList()

	groundMaterial := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(finalSceneClearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				// diffuse
				albedo := core.RandomVec3InRange(sampler, 0, 1).MultiplyVec(core.RandomVec3InRange(sampler, 0, 1))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				// metal
				albedo := core.RandomVec3InRange(sampler, 0.5, 1)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				// glass
				sphereMaterial = material.NewDielectric(1.5)
			}
			world.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewColor(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)))

	return &Scene{
		Name:         "final",
		World:        world,
		CameraConfig: renderer.DefaultCameraConfig(),
	}
}
