package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-tiled-pathtracer/pkg/output"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
	"github.com/df07/go-tiled-pathtracer/pkg/scene"
)

// options holds the command line. Flags missing from set leave the render
// file or the scene's defaults in place.
type options struct {
	scene      string
	configPath string
	out        string
	format     string
	width      int
	samples    int
	depth      int
	workers    int
	tileRows   int
	tileCols   int
	seed       int64
	thumbnail  int
	set        map[string]bool // Flags given explicitly
}

func (o options) isSet(name string) bool { return o.set[name] }

// cameraOverrides returns the camera flags that were given explicitly
func (o options) cameraOverrides() renderer.CameraOverrides {
	var overrides renderer.CameraOverrides
	if o.isSet("width") {
		overrides.ImageWidth = &o.width
	}
	if o.isSet("samples") {
		overrides.SamplesPerPixel = &o.samples
	}
	if o.isSet("depth") {
		overrides.MaxDepth = &o.depth
	}
	return overrides
}

// job is a fully resolved render request
type job struct {
	scene        *scene.Scene
	camera       *renderer.Camera
	renderConfig renderer.RenderConfig
	outPath      string // "-" writes to stdout
	format       output.Format
	thumbnail    int
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "", "Scene to render: "+strings.Join(scene.Names(), ", ")+" (default final)")
	flag.StringVar(&opts.configPath, "config", "", "YAML or JSON render file")
	flag.StringVar(&opts.out, "out", "", "Output file, or - for stdout (default output/<scene>/render_<timestamp>.<format>)")
	flag.StringVar(&opts.format, "format", "", "Output format: "+formatNames()+" (default from -out, else ppm)")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel")
	flag.IntVar(&opts.depth, "depth", 0, "Maximum ray bounces")
	flag.IntVar(&opts.workers, "workers", 0, "Maximum tiles rendered at once, 0 for one per CPU (default 16)")
	flag.IntVar(&opts.tileRows, "tile-rows", 0, "Tile grid rows (default 20)")
	flag.IntVar(&opts.tileCols, "tile-cols", 0, "Tile grid columns (default 20)")
	flag.Int64Var(&opts.seed, "seed", 42, "Base seed for scene generation and sampling")
	flag.IntVar(&opts.thumbnail, "thumbnail", 0, "Also write a PNG thumbnail at most this many pixels wide")
	list := flag.Bool("list", false, "List the built-in scenes and exit")
	flag.Parse()
	defer glog.Flush()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	if *list {
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-10s %s\n", info.Name, info.Description)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		glog.Flush()
		glog.Exitf("Render failed: %v", err)
	}
}

// run resolves the options, renders and writes the result
func run(ctx context.Context, opts options) error {
	var rf *scene.RenderFile
	if opts.configPath != "" {
		var err error
		if rf, err = scene.LoadRenderFile(opts.configPath); err != nil {
			return err
		}
	}

	j, err := resolveJob(opts, rf, time.Now())
	if err != nil {
		return err
	}

	glog.Infof("Scene %q: %d primitives", j.scene.Name, j.scene.GetPrimitiveCount())

	raytracer, err := renderer.NewRaytracer(j.camera, j.scene.World, j.renderConfig, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("while creating raytracer: %w", err)
	}

	buffer, stats, renderErr := raytracer.Render(ctx)
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		return renderErr
	}
	if renderErr != nil {
		glog.Warningf("Render interrupted, writing partial image with %d pixels missing", buffer.Unwritten())
	}

	glog.Infof("Rendered %d samples over %d tiles in %v (%.1f samples per pixel, peak %d workers)",
		stats.TotalSamples, stats.Tiles, stats.Elapsed, stats.AverageSamples, stats.PeakWorkers)

	if err := writeOutput(j, buffer); err != nil {
		return err
	}
	return renderErr
}

// resolveJob layers flags over the render file over the scene's defaults
func resolveJob(opts options, rf *scene.RenderFile, now time.Time) (*job, error) {
	if rf == nil {
		rf = &scene.RenderFile{}
	}

	renderConfig := rf.ApplyRender(renderer.DefaultRenderConfig())
	if opts.isSet("seed") || rf.Seed == nil {
		renderConfig.Seed = opts.seed
	}
	if opts.isSet("workers") {
		renderConfig.MaxWorkers = opts.workers
	}
	if opts.isSet("tile-rows") {
		renderConfig.TileRows = opts.tileRows
	}
	if opts.isSet("tile-cols") {
		renderConfig.TileCols = opts.tileCols
	}
	if err := renderConfig.Validate(); err != nil {
		return nil, err
	}

	sceneName := firstNonEmpty(opts.scene, rf.Scene, "final")
	s, err := scene.Create(sceneName, renderConfig.Seed)
	if err != nil {
		return nil, err
	}

	camera, err := s.NewCamera(rf.Camera, opts.cameraOverrides())
	if err != nil {
		return nil, err
	}

	outPath := firstNonEmpty(opts.out, rf.Output)
	formatName := firstNonEmpty(opts.format, rf.Format)

	var format output.Format
	switch {
	case formatName != "":
		if format, err = output.ParseFormat(formatName); err != nil {
			return nil, err
		}
	case outPath != "" && outPath != "-":
		if format, err = output.FormatFromPath(outPath); err != nil {
			return nil, err
		}
	default:
		format = output.FormatPPM
	}

	if outPath == "" {
		timestamp := now.Format("20060102_150405")
		outPath = filepath.Join("output", s.Name, fmt.Sprintf("render_%s.%s", timestamp, format))
	}

	return &job{
		scene:        s,
		camera:       camera,
		renderConfig: renderConfig,
		outPath:      outPath,
		format:       format,
		thumbnail:    opts.thumbnail,
	}, nil
}

// writeOutput encodes the buffer, plus a thumbnail when one was requested
func writeOutput(j *job, buffer *renderer.PixelBuffer) error {
	if j.outPath == "-" {
		if err := output.Encode(os.Stdout, buffer, j.format); err != nil {
			return fmt.Errorf("while writing to stdout: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(j.outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}
	if err := output.WriteFile(j.outPath, buffer, j.format); err != nil {
		return err
	}
	glog.Infof("Render saved as %s", j.outPath)

	if j.thumbnail > 0 {
		thumbPath := strings.TrimSuffix(j.outPath, filepath.Ext(j.outPath)) + "_thumb.png"
		if err := writeThumbnail(thumbPath, buffer, j.thumbnail); err != nil {
			return err
		}
		glog.Infof("Thumbnail saved as %s", thumbPath)
	}
	return nil
}

func writeThumbnail(path string, buffer *renderer.PixelBuffer, maxWidth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating thumbnail: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("while closing thumbnail: %w", cerr)
		}
	}()

	return output.EncodeThumbnail(f, buffer, maxWidth)
}

func formatNames() string {
	names := make([]string, 0, len(output.Formats()))
	for _, f := range output.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
