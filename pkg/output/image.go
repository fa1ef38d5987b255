package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// ToImage converts the raster to 8-bit RGBA using the same gamma and
// quantization as the PPM writer
func ToImage(raster Raster) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, raster.Width(), raster.Height()))
	for y := 0; y < raster.Height(); y++ {
		for x := 0; x < raster.Width(); x++ {
			c := core.ColorToRGB8(raster.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// Encode writes the raster to w in the given format
func Encode(w io.Writer, raster Raster, format Format) error {
	var err error
	switch format {
	case FormatPPM:
		return WritePPM(w, raster)
	case FormatPNG:
		err = png.Encode(w, ToImage(raster))
	case FormatBMP:
		err = bmp.Encode(w, ToImage(raster))
	case FormatTIFF:
		err = tiff.Encode(w, ToImage(raster), &tiff.Options{Compression: tiff.Uncompressed})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("while encoding %s: %w", format, err)
	}
	return nil
}

// WriteFile encodes the raster into a new file at path. An empty format is
// taken from the file extension.
func WriteFile(path string, raster Raster, format Format) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("while closing %s: %w", path, cerr)
		}
	}()

	return Encode(f, raster, format)
}

// Thumbnail scales img down to at most maxWidth pixels wide, keeping the
// aspect ratio. Images already narrow enough are returned unchanged.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	bounds := img.Bounds()
	if maxWidth <= 0 || bounds.Dx() <= maxWidth {
		return img
	}

	height := max(1, bounds.Dy()*maxWidth/bounds.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// EncodeThumbnail writes a PNG of the raster scaled to at most maxWidth pixels wide
func EncodeThumbnail(w io.Writer, raster Raster, maxWidth int) error {
	if err := png.Encode(w, Thumbnail(ToImage(raster), maxWidth)); err != nil {
		return fmt.Errorf("while encoding thumbnail: %w", err)
	}
	return nil
}
