package scene

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// TileGridConfig sets the tile grid dimensions
type TileGridConfig struct {
	Rows int `json:"rows,omitempty"`
	Cols int `json:"cols,omitempty"`
}

// RenderFile describes a render job in YAML or JSON. Every field is
// optional; omitted fields leave the defaults and command-line flags alone.
//
//	scene: final
//	seed: 7
//	output: renders/final.png
//	camera:
//	  imageWidth: 600
//	  samplesPerPixel: 64
//	  lookFrom: [13, 2, 3]
//	  defocusAngle: 0
//	tiles: {rows: 10, cols: 10}
//	workers: 8
type RenderFile struct {
	Scene   string                   `json:"scene,omitempty"`
	Seed    *int64                   `json:"seed,omitempty"`
	Output  string                   `json:"output,omitempty"`
	Format  string                   `json:"format,omitempty"`
	Camera  renderer.CameraOverrides `json:"camera,omitempty"`
	Tiles   TileGridConfig           `json:"tiles,omitempty"`
	Workers int                      `json:"workers,omitempty"`
}

// ParseRenderFile decodes a render file, rejecting unknown fields
func ParseRenderFile(data []byte) (*RenderFile, error) {
	var rf RenderFile
	if err := yaml.UnmarshalStrict(data, &rf); err != nil {
		return nil, fmt.Errorf("while decoding render file: %w", err)
	}
	return &rf, nil
}

// LoadRenderFile reads and decodes the render file at path
func LoadRenderFile(path string) (*RenderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("while reading render file: %w", err)
	}
	rf, err := ParseRenderFile(data)
	if err != nil {
		return nil, fmt.Errorf("while loading %s: %w", path, err)
	}
	return rf, nil
}

// ApplyRender returns config with the file's tile grid, worker ceiling and seed applied
func (rf *RenderFile) ApplyRender(config renderer.RenderConfig) renderer.RenderConfig {
	if rf.Tiles.Rows != 0 {
		config.TileRows = rf.Tiles.Rows
	}
	if rf.Tiles.Cols != 0 {
		config.TileCols = rf.Tiles.Cols
	}
	if rf.Workers != 0 {
		config.MaxWorkers = rf.Workers
	}
	if rf.Seed != nil {
		config.Seed = *rf.Seed
	}
	return config
}

// Marshal encodes the render file as YAML
func (rf *RenderFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("while encoding render file: %w", err)
	}
	return data, nil
}
