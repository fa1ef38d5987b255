package scene

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// NewGlassScene creates a single glass ball on a gray ground, framed by the
// random-spheres camera
func NewGlassScene() *Scene {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
	)

	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.ImageWidth = 400
	cameraConfig.SamplesPerPixel = 100

	return &Scene{Name: "glass", World: world, CameraConfig: cameraConfig}
}

// NewMaterialsScene creates three spheres on a yellow ground: diffuse blue in
// the middle, a hollow glass ball on the left and fuzzy gold metal on the right
func NewMaterialsScene() *Scene {
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50)
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 1.0)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, materialGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, materialRight),
	)

	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    10.0,
		FocusDist:       3.4,
	}

	return &Scene{Name: "materials", World: world, CameraConfig: cameraConfig}
}

// NewCompositeScene nests lists inside lists: a ring of metal spheres and a
// column of glass spheres are each their own group, sharing one material per group
func NewCompositeScene() *Scene {
	ring := geometry.NewHittableList()
	ringMetal := material.NewMetal(core.NewColor(0.8, 0.8, 0.85), 0.05)
	for i := 0; i < 8; i++ {
		x := float64(i%4) - 1.5
		z := float64(i/4) - 0.5
		ring.Add(geometry.NewSphere(core.NewVec3(x, 0.3, z), 0.3, ringMetal))
	}

	column := geometry.NewHittableList()
	glass := material.NewDielectric(1.5)
	for i := 0; i < 3; i++ {
		column.Add(geometry.NewSphere(core.NewVec3(0, 0.9+0.5*float64(i), 1.2), 0.25, glass))
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.4, 0.5, 0.4))),
		geometry.NewHittableList(ring, column),
	)

	cameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            30,
		LookFrom:        core.NewVec3(0, 2, 7),
		LookAt:          core.NewVec3(0, 0.6, 0),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       7,
	}

	return &Scene{Name: "composite", World: world, CameraConfig: cameraConfig}
}
