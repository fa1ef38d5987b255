package scene

import (
	"fmt"

	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string                 // Registry name
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig  // Camera the scene is framed for
}

// NewCamera builds the scene's camera with overrides applied in order
func (s *Scene) NewCamera(overrides ...renderer.CameraOverrides) (*renderer.Camera, error) {
	cameraConfig := s.CameraConfig
	for _, override := range overrides {
		cameraConfig = override.Apply(cameraConfig)
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("while creating camera for scene %q: %w", s.Name, err)
	}
	return camera, nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene,
// counting through nested lists
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(shape geometry.Shape) int {
	list, ok := shape.(*geometry.HittableList)
	if !ok {
		return 1
	}
	count := 0
	for _, object := range list.Objects {
		count += countPrimitives(object)
	}
	return count
}
