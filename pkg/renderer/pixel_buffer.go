package renderer

import (
	"fmt"
	"image"
	"sync"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// PixelBuffer is the shared width x height image that render tasks write into.
// Rows are stored top to bottom. Every write takes the buffer's lock, so
// tasks may finish in any order.
type PixelBuffer struct {
	mu     sync.Mutex
	width  int
	height int
	pixels []core.Color
	writes []int
}

// NewPixelBuffer creates a black buffer with no pixels written
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Color, width*height),
		writes: make([]int, width*height),
	}
}

// Width returns the buffer width in pixels
func (pb *PixelBuffer) Width() int { return pb.width }

// Height returns the buffer height in pixels
func (pb *PixelBuffer) Height() int { return pb.height }

// Bounds returns the rectangle covered by the buffer
func (pb *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, pb.width, pb.height) }

// WriteTile copies a tile-local buffer into place. local holds the tile's
// pixels row-major starting at bounds.Min.
func (pb *PixelBuffer) WriteTile(bounds image.Rectangle, local []core.Color) error {
	if !bounds.In(pb.Bounds()) {
		return fmt.Errorf("tile bounds %v outside image %v", bounds, pb.Bounds())
	}
	if want := bounds.Dx() * bounds.Dy(); len(local) != want {
		return fmt.Errorf("tile buffer holds %d pixels, bounds %v need %d", len(local), bounds, want)
	}

	pb.mu.Lock()
	defer pb.mu.Unlock()

	tileWidth := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := local[(y-bounds.Min.Y)*tileWidth : (y-bounds.Min.Y+1)*tileWidth]
		offset := y*pb.width + bounds.Min.X
		copy(pb.pixels[offset:offset+tileWidth], row)
		for i := offset; i < offset+tileWidth; i++ {
			pb.writes[i]++
		}
	}
	return nil
}

// At returns the color of pixel (x, y)
func (pb *PixelBuffer) At(x, y int) core.Color {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.pixels[y*pb.width+x]
}

// WriteCount returns how many tiles have written pixel (x, y)
func (pb *PixelBuffer) WriteCount(x, y int) int {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return pb.writes[y*pb.width+x]
}

// Unwritten returns the number of pixels no tile has written yet
func (pb *PixelBuffer) Unwritten() int {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	count := 0
	for _, w := range pb.writes {
		if w == 0 {
			count++
		}
	}
	return count
}

// Pixels returns a copy of the buffer in row-major order, top row first
func (pb *PixelBuffer) Pixels() []core.Color {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	return append([]core.Color(nil), pb.pixels...)
}
