package renderer

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given camera and integrator
func NewTileRenderer(camera *Camera, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		integrator: integratorInst,
	}
}

// RenderTile renders every pixel of the tile into a new tile-local buffer,
// row-major from the tile's top-left corner. Each pixel is the mean of
// SamplesPerPixel camera rays.
func (tr *TileRenderer) RenderTile(tile Tile, sampler core.Sampler) ([]core.Color, RenderStats) {
	bounds := tile.Bounds
	samples := tr.camera.SamplesPerPixel()
	maxDepth := tr.camera.MaxDepth()
	scale := tr.camera.PixelSamplesScale()

	local := make([]core.Color, 0, bounds.Dx()*bounds.Dy())
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var pixelColor core.Color
			for s := 0; s < samples; s++ {
				ray := tr.camera.GetRay(i, j, sampler)
				pixelColor = pixelColor.Add(tr.integrator.RayColor(ray, maxDepth, sampler))
			}
			local = append(local, pixelColor.Multiply(scale))
		}
	}

	return local, RenderStats{
		TotalPixels:  len(local),
		TotalSamples: len(local) * samples,
		Tiles:        1,
	}
}
