package renderer

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/geometry"
	"github.com/df07/go-tiled-pathtracer/pkg/integrator"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	returnColor core.Color
	callCount   atomic.Int64
}

func (m *MockIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Color {
	m.callCount.Add(1)
	return m.returnColor
}

// testLogger forwards to the test log
type testLogger struct {
	t *testing.T
}

func (l testLogger) Printf(format string, args ...interface{}) {
	l.t.Logf(format, args...)
}

func TestRenderConfig_Validate(t *testing.T) {
	if err := DefaultRenderConfig().Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
	for _, cfg := range []RenderConfig{{TileRows: 0, TileCols: 4}, {TileRows: 4, TileCols: -1}} {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Config %+v: expected ErrInvalidConfig, got %v", cfg, err)
		}
	}
}

func TestNewRaytracer_RequiresCamera(t *testing.T) {
	if _, err := NewRaytracer(nil, geometry.NewHittableList(), DefaultRenderConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

// TestRender_EveryPixelWrittenOnce renders with random grids and ceilings and
// checks each pixel is written by exactly one tile
func TestRender_EveryPixelWrittenOnce(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		rows, cols int
		workers    int
	}{
		{"single tile", 17, 1, 1, 1},
		{"uneven grid", 37, 3, 7, 2},
		{"default grid", 64, 20, 20, 16},
		{"grid finer than image", 9, 20, 20, 4},
		{"cpu count workers", 50, 5, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testCameraConfig()
			cfg.ImageWidth = tt.width
			cfg.SamplesPerPixel = 3
			camera, err := NewCamera(cfg)
			if err != nil {
				t.Fatalf("NewCamera: %v", err)
			}

			mock := &MockIntegrator{returnColor: core.NewColor(0.25, 0.5, 0.75)}
			rt, err := NewRaytracerWithIntegrator(camera, mock, RenderConfig{
				TileRows: tt.rows, TileCols: tt.cols, MaxWorkers: tt.workers, Seed: 1,
			}, testLogger{t})
			if err != nil {
				t.Fatalf("NewRaytracerWithIntegrator: %v", err)
			}

			var (
				mu      sync.Mutex
				numbers = map[int]bool{}
			)
			rt.SetTileCallback(func(result TileResult) {
				mu.Lock()
				defer mu.Unlock()
				numbers[result.TileNumber] = true
			})

			buf, stats, err := rt.Render(context.Background())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}

			width, height := camera.ImageWidth(), camera.ImageHeight()
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					if n := buf.WriteCount(x, y); n != 1 {
						t.Fatalf("Pixel (%d,%d) written %d times", x, y, n)
					}
					if got := buf.At(x, y); !vecNear(got, mock.returnColor, 1e-12) {
						t.Fatalf("Pixel (%d,%d): expected mean %v, got %v", x, y, mock.returnColor, got)
					}
				}
			}

			pixels := width * height
			if got := mock.callCount.Load(); got != int64(pixels*3) {
				t.Errorf("Expected %d integrator calls, got %d", pixels*3, got)
			}
			if stats.TotalPixels != pixels || stats.TotalSamples != pixels*3 || stats.AverageSamples != 3 {
				t.Errorf("Unexpected stats %+v", stats)
			}
			if stats.PeakWorkers > stats.Workers {
				t.Errorf("Peak %d exceeds ceiling %d", stats.PeakWorkers, stats.Workers)
			}
			if len(numbers) != stats.Tiles {
				t.Errorf("Expected %d tile callbacks, got %d", stats.Tiles, len(numbers))
			}
			for i := 1; i <= stats.Tiles; i++ {
				if !numbers[i] {
					t.Errorf("Missing completion number %d", i)
				}
			}
		})
	}
}

func TestRender_Cancelled(t *testing.T) {
	camera, err := NewCamera(testCameraConfig())
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	rt, err := NewRaytracerWithIntegrator(camera, &MockIntegrator{}, RenderConfig{TileRows: 10, TileCols: 10, MaxWorkers: 1}, testLogger{t})
	if err != nil {
		t.Fatalf("NewRaytracerWithIntegrator: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf, _, err := rt.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if buf == nil || buf.Unwritten() == 0 {
		t.Error("Expected a partial buffer")
	}
}

// glassScene is a gray ground with one glass ball, seen from the random-spheres camera
func glassScene(t *testing.T, width int) (*Camera, geometry.Shape) {
	t.Helper()
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
	)

	cfg := DefaultCameraConfig()
	cfg.ImageWidth = width
	cfg.SamplesPerPixel = 4
	cfg.MaxDepth = 10
	cfg.DefocusAngle = 0
	camera, err := NewCamera(cfg)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return camera, world
}

func TestRender_GlassSceneEndToEnd(t *testing.T) {
	camera, world := glassScene(t, 40)
	config := RenderConfig{TileRows: 4, TileCols: 4, MaxWorkers: 3, Seed: 7}

	rt, err := NewRaytracer(camera, world, config, testLogger{t})
	if err != nil {
		t.Fatalf("NewRaytracer: %v", err)
	}
	buf, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	width, height := camera.ImageWidth(), camera.ImageHeight()
	if width != 40 || height != 22 {
		t.Fatalf("Expected 40x22 image, got %dx%d", width, height)
	}
	if n := buf.Unwritten(); n != 0 {
		t.Fatalf("%d pixels left unwritten", n)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := buf.At(x, y)
			for _, v := range []float64{c.X, c.Y, c.Z} {
				if math.IsNaN(v) || v < 0 || v > 1 {
					t.Fatalf("Pixel (%d,%d) out of range: %v", x, y, c)
				}
			}
		}
	}

	// Top row rays all climb above the scene, so each pixel is the mean of
	// sky samples. Replay the first row of every top tile with the same seeds.
	tiles, err := NewTileGrid(width, height, config.TileRows, config.TileCols)
	if err != nil {
		t.Fatalf("NewTileGrid: %v", err)
	}
	for _, tile := range tiles {
		if tile.TileY != 0 {
			continue
		}
		sampler := core.NewSeededSampler(config.Seed + int64(tile.ID))
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			var sum core.Color
			for s := 0; s < camera.SamplesPerPixel(); s++ {
				sum = sum.Add(integrator.SkyColor(camera.GetRay(x, 0, sampler)))
			}
			expected := sum.Multiply(camera.PixelSamplesScale())
			got := buf.At(x, 0)
			if !vecNear(got, expected, 1e-12) {
				t.Errorf("Top row pixel %d: expected sky %v, got %v", x, expected, got)
			}

			// Any mean of sky colors lies on the white to blue segment
			if math.Abs(got.Z-1) > 1e-12 || math.Abs((1-got.X)/0.5-(1-got.Y)/0.3) > 1e-9 {
				t.Errorf("Top row pixel %d is off the sky gradient: %v", x, got)
			}
		}
	}
}

func TestRender_DeterministicAcrossWorkerCounts(t *testing.T) {
	camera, world := glassScene(t, 32)

	render := func(workers int) []core.Color {
		rt, err := NewRaytracer(camera, world, RenderConfig{TileRows: 5, TileCols: 3, MaxWorkers: workers, Seed: 42}, testLogger{t})
		if err != nil {
			t.Fatalf("NewRaytracer: %v", err)
		}
		buf, _, err := rt.Render(context.Background())
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		return buf.Pixels()
	}

	serial := render(1)
	parallel := render(8)
	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Errorf("Parallel render differs from serial render (-serial +parallel)\n%s", diff)
	}
}
