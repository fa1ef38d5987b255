package material

import (
	"math"
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestReflectance(t *testing.T) {
	tests := []struct {
		name     string
		cosine   float64
		ratio    float64
		expected float64
	}{
		{"matched indices", 1.0, 1.0, 0.0},
		{"normal incidence glass", 1.0, 1.5, 0.04},
		{"grazing", 0.0, 1.5, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflectance(tt.cosine, tt.ratio); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestDielectric_RefractionRatio(t *testing.T) {
	glass := NewDielectric(1.5)
	if got := glass.RefractionRatio(true); got != 1.5 {
		t.Errorf("Front face ratio: expected 1.5, got %f", got)
	}
	if got := glass.RefractionRatio(false); math.Abs(got-1/1.5) > 1e-15 {
		t.Errorf("Back face ratio: expected %f, got %f", 1/1.5, got)
	}
}

func TestDielectric_NormalIncidence(t *testing.T) {
	glass := NewDielectric(1.5)
	white := core.NewColor(1, 1, 1)
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -2))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1), FrontFace: true}

	tests := []struct {
		name      string
		draw      float64
		direction core.Vec3
	}{
		// Schlick gives 0.04 at normal incidence
		{"draw above reflectance refracts", 0.5, core.NewVec3(0, 0, -1)},
		{"draw below reflectance reflects", 0.01, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scatter, didScatter := glass.Scatter(rayIn, hit, fixedSampler{v1: tt.draw})
			if !didScatter {
				t.Fatal("Dielectric should always scatter")
			}
			if !scatter.Attenuation.Equals(white) {
				t.Errorf("Expected white attenuation, got %v", scatter.Attenuation)
			}
			if !vecNear(scatter.Scattered.Direction, tt.direction, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.direction, scatter.Scattered.Direction)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)
	normal := core.NewVec3(0, 0, 1)

	// 60 degrees from the normal: 1.5 * sin(60) > 1 on the front face
	dir := core.NewVec3(math.Sin(math.Pi/3), 0, -math.Cos(math.Pi/3))
	rayIn := core.NewRay(core.NewVec3(0, 0, 1), dir)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, FrontFace: true}

	scatter, _ := glass.Scatter(rayIn, hit, fixedSampler{v1: 0.999})
	expected := core.Reflect(dir, normal)
	if !vecNear(scatter.Scattered.Direction, expected, 1e-12) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, scatter.Scattered.Direction)
	}

	// The same angle on the back face uses 1/1.5 and refracts
	hit.FrontFace = false
	scatter, _ = glass.Scatter(rayIn, hit, fixedSampler{v1: 0.999})
	if scatter.Scattered.Direction.Dot(normal) >= 0 {
		t.Errorf("Expected refraction through the surface, got %v", scatter.Scattered.Direction)
	}
	if math.Abs(scatter.Scattered.Direction.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got %v", scatter.Scattered.Direction)
	}
}
