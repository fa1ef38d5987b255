package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder struct {
	info  SceneInfo
	build func(seed int64) *Scene
}

var builtins = map[string]builder{
	"final": {
		info: SceneInfo{Name: "final", Description: "Random small spheres around three large glass, diffuse and metal balls"},
		build: func(seed int64) *Scene {
			return NewFinalScene(core.NewSeededSampler(seed))
		},
	},
	"glass": {
		info:  SceneInfo{Name: "glass", Description: "One glass ball on a gray ground"},
		build: func(int64) *Scene { return NewGlassScene() },
	},
	"materials": {
		info:  SceneInfo{Name: "materials", Description: "Diffuse, hollow glass and fuzzy metal spheres side by side"},
		build: func(int64) *Scene { return NewMaterialsScene() },
	},
	"composite": {
		info:  SceneInfo{Name: "composite", Description: "Nested groups of metal and glass spheres"},
		build: func(int64) *Scene { return NewCompositeScene() },
	},
	"grid": {
		info:  SceneInfo{Name: "grid", Description: "20x20 grid of colored metal spheres"},
		build: func(int64) *Scene { return NewSphereGridScene() },
	},
}

// Create builds the named scene. seed only affects scenes with random content.
func Create(name string, seed int64) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (choose from %v)", ErrUnknownScene, name, Names())
	}
	return b.build(seed), nil
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns a description of every built-in scene, sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, name := range Names() {
		scenes = append(scenes, builtins[name].info)
	}
	return scenes
}
