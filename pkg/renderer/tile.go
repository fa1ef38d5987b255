package renderer

import (
	"fmt"
	"image"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Row-major index in the tile grid, also seeds the tile's sampler
	TileX  int             // Column in the tile grid
	TileY  int             // Row in the tile grid
	Bounds image.Rectangle // Pixel bounds, Max exclusive
}

// NewTileGrid partitions a width x height image into rows x cols tiles in
// row-major order. Tile sizes are the ceiling of the image size divided by
// the grid size, with the last row and column clamped to the image edge.
// Grid cells that fall entirely outside the image are dropped, so the
// returned tiles are disjoint and cover every pixel exactly once.
func NewTileGrid(width, height, rows, cols int) ([]Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image must have positive size, got %dx%d", ErrInvalidConfig, width, height)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: tile grid must have positive size, got %dx%d", ErrInvalidConfig, rows, cols)
	}

	// Ceiling division
	tileWidth := (width + cols - 1) / cols
	tileHeight := (height + rows - 1) / rows

	tiles := make([]Tile, 0, rows*cols)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			x0, y0 := tx*tileWidth, ty*tileHeight
			if x0 >= width || y0 >= height {
				continue
			}
			bounds := image.Rect(x0, y0, min(x0+tileWidth, width), min(y0+tileHeight, height))
			tiles = append(tiles, Tile{
				ID:     ty*cols + tx,
				TileX:  tx,
				TileY:  ty,
				Bounds: bounds,
			})
		}
	}

	return tiles, nil
}
