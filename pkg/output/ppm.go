package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// Raster is a grid of linear colors, such as a finished render
type Raster interface {
	Width() int
	Height() int
	At(x, y int) core.Color
}

// WritePPM writes the raster as a plain-text P3 pixmap: a header of
// "P3", the dimensions and 255, then one "r g b" line per pixel, top row
// first. Colors are gamma-corrected and quantized with core.ColorToRGB8.
func WritePPM(w io.Writer, raster Raster) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", raster.Width(), raster.Height()); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}

	for y := 0; y < raster.Height(); y++ {
		for x := 0; x < raster.Width(); x++ {
			c := core.ColorToRGB8(raster.At(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("while writing pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while flushing PPM output: %w", err)
	}
	return nil
}
