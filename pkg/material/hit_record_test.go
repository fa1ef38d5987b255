package material

import (
	"testing"

	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	tests := []struct {
		name          string
		direction     core.Vec3
		expectedFront bool
		expected      core.Vec3
	}{
		{"arriving from outside", core.NewVec3(0, -1, 0), true, outward},
		{"arriving from inside", core.NewVec3(0, 1, 0), false, outward.Negate()},
		{"grazing counts as back face", core.NewVec3(1, 0, 0), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expected) {
				t.Errorf("Expected normal %v, got %v", tt.expected, hit.Normal)
			}
			if tt.direction.Dot(hit.Normal) > 0 {
				t.Errorf("Normal %v does not face the incoming ray", hit.Normal)
			}
		})
	}
}
