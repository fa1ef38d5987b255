package renderer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
)

const tracerName = "go-tiled-pathtracer/renderer"

// RenderConfig controls how the image is split up and scheduled
type RenderConfig struct {
	TileRows   int   `json:"tileRows,omitempty"`   // Tile grid rows
	TileCols   int   `json:"tileCols,omitempty"`   // Tile grid columns
	MaxWorkers int   `json:"maxWorkers,omitempty"` // Ceiling on tiles rendered at once, <= 0 means one per CPU
	Seed       int64 `json:"seed,omitempty"`       // Base seed; tile N samples with Seed+N
}

// DefaultRenderConfig returns a 20x20 tile grid with at most 16 tiles in flight
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileRows:   20,
		TileCols:   20,
		MaxWorkers: 16,
		Seed:       42,
	}
}

// Validate reports settings that cannot be scheduled
func (c RenderConfig) Validate() error {
	if c.TileRows <= 0 || c.TileCols <= 0 {
		return fmt.Errorf("%w: tile grid must have positive size, got %dx%d", ErrInvalidConfig, c.TileRows, c.TileCols)
	}
	return nil
}

// TileResult reports a finished tile
type TileResult struct {
	Tile       Tile
	Stats      RenderStats
	TileNumber int // Completion order, 1-based
	TotalTiles int
}

// Raytracer renders a world through a camera, tile by tile in parallel
type Raytracer struct {
	camera       *Camera
	tileRenderer *TileRenderer
	config       RenderConfig
	logger       core.Logger
	onTile       func(TileResult)
}

// NewRaytracer creates a path tracing renderer for world
func NewRaytracer(camera *Camera, world geometry.Shape, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	return NewRaytracerWithIntegrator(camera, integrator.NewPathTracingIntegrator(world), config, logger)
}

// NewRaytracerWithIntegrator creates a renderer that shades rays with integratorInst
func NewRaytracerWithIntegrator(camera *Camera, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if camera == nil {
		return nil, fmt.Errorf("%w: camera is required", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		camera:       camera,
		tileRenderer: NewTileRenderer(camera, integratorInst),
		config:       config,
		logger:       logger,
	}, nil
}

// SetTileCallback registers fn to be called after each tile is written.
// fn runs on the rendering goroutine and may be called concurrently.
func (rt *Raytracer) SetTileCallback(fn func(TileResult)) {
	rt.onTile = fn
}

// Camera returns the camera the renderer was built with
func (rt *Raytracer) Camera() *Camera { return rt.camera }

// Render traces the full image. Each tile gets its own sampler seeded from
// the render seed and the tile ID, so output does not depend on scheduling.
// If ctx is cancelled before all tiles are admitted, the partial buffer is
// returned along with the error.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	tracer := otel.Tracer(tracerName)
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	start := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()

	tiles, err := NewTileGrid(width, height, rt.config.TileRows, rt.config.TileCols)
	if err != nil {
		err = fmt.Errorf("while building tile grid: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, RenderStats{}, err
	}

	pool := NewWorkerPool(rt.config.MaxWorkers)
	buffer := NewPixelBuffer(width, height)

	span.SetAttributes(
		attribute.Int("image.width", width),
		attribute.Int("image.height", height),
		attribute.Int("tiles", len(tiles)),
		attribute.Int("workers", pool.GetNumWorkers()),
	)
	rt.logger.Printf("Rendering %dx%d image: %d tiles, %d samples per pixel, up to %d workers\n",
		width, height, len(tiles), rt.camera.SamplesPerPixel(), pool.GetNumWorkers())

	var (
		mu        sync.Mutex
		stats     RenderStats
		completed int
	)

	err = pool.Run(ctx, tiles, func(ctx context.Context, tile Tile) error {
		var tileSpan trace.Span
		_, tileSpan = tracer.Start(ctx, "Raytracer.renderTile")
		defer tileSpan.End()
		tileSpan.SetAttributes(attribute.Int("tile.id", tile.ID))

		sampler := core.NewSeededSampler(rt.config.Seed + int64(tile.ID))
		local, tileStats := rt.tileRenderer.RenderTile(tile, sampler)

		if err := buffer.WriteTile(tile.Bounds, local); err != nil {
			err = fmt.Errorf("while writing tile to image: %w", err)
			tileSpan.RecordError(err)
			tileSpan.SetStatus(codes.Error, err.Error())
			return err
		}

		mu.Lock()
		stats.add(tileStats)
		completed++
		result := TileResult{Tile: tile, Stats: tileStats, TileNumber: completed, TotalTiles: len(tiles)}
		mu.Unlock()

		rt.reportProgress(result)
		if rt.onTile != nil {
			rt.onTile(result)
		}
		return nil
	})

	mu.Lock()
	stats.Workers = pool.GetNumWorkers()
	stats.PeakWorkers = pool.PeakInFlight()
	stats.Elapsed = time.Since(start)
	stats.finalize()
	mu.Unlock()

	if err != nil {
		err = fmt.Errorf("while rendering tiles: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return buffer, stats, err
	}

	rt.logger.Printf("Render complete: %d samples in %v\n", stats.TotalSamples, stats.Elapsed)
	span.SetStatus(codes.Ok, "")
	return buffer, stats, nil
}

// reportProgress logs each time another tenth of the tiles is done
func (rt *Raytracer) reportProgress(result TileResult) {
	glog.V(1).Infof("Tile %d (%v) done, %d of %d", result.Tile.ID, result.Tile.Bounds, result.TileNumber, result.TotalTiles)
	if result.TileNumber*10/result.TotalTiles == (result.TileNumber-1)*10/result.TotalTiles {
		return
	}
	rt.logger.Printf("Tiles remaining: %d of %d\n", result.TotalTiles-result.TileNumber, result.TotalTiles)
}
