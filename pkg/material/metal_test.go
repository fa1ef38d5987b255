package material

import (
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewColor(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewColor(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	sampler := core.NewSeededSampler(42)

	tests := []struct {
		name      string
		direction core.Vec3
		normal    core.Vec3
	}{
		{"45 degrees", core.NewVec3(0, -1, -1), core.NewVec3(0, 0, 1)},
		{"head on", core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)},
		{"oblique", core.NewVec3(2, 0.5, -1), core.NewVec3(0, 0, 1)},
		{"tilted normal", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 0).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 0, 1), tt.direction)
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: tt.normal, FrontFace: true}

			scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
			if !didScatter {
				t.Fatal("Metal should scatter")
			}

			unit := tt.direction.Normalize()
			expected := unit.Subtract(tt.normal.Multiply(2 * unit.Dot(tt.normal)))
			if !vecNear(scatter.Scattered.Direction, expected, 1e-10) {
				t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
			}
			if !scatter.Attenuation.Equals(albedo) {
				t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
			}
		})
	}
}

func TestMetal_FuzzBelowSurfaceIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 1.0)

	// Grazing ray; the fuzz vector (0,0,-1) pushes the reflection under the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0, 0.01), core.NewVec3(1, 0, -0.01))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	if _, didScatter := metal.Scatter(rayIn, hit, downSampler(0.5)); didScatter {
		t.Error("Expected ray reflected below the surface to be absorbed")
	}
}

func TestMetal_FuzzyReflectionStaysNearMirror(t *testing.T) {
	metal := NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.3)
	sampler := core.NewSeededSampler(42)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}
	mirror := core.NewVec3(0, 0, 1)

	for i := 0; i < 100; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, sampler)
		if !didScatter {
			t.Fatal("Head-on fuzzy reflection with fuzz < 1 should always scatter")
		}
		if d := scatter.Scattered.Direction.Subtract(mirror).Length(); d > 0.3+1e-9 {
			t.Fatalf("Fuzzed direction %v is further than fuzz from mirror direction", scatter.Scattered.Direction)
		}
	}
}
