package material

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	v1 float64
	v2 core.Vec2
	v3 core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.v1 }
func (f fixedSampler) Get2D() core.Vec2 { return f.v2 }
func (f fixedSampler) Get3D() core.Vec3 { return f.v3 }

// downSampler makes core.RandomUnitVector return (0, 0, -1)
func downSampler(v1 float64) fixedSampler {
	return fixedSampler{v1: v1, v2: core.NewVec2(0.5, 0.5), v3: core.NewVec3(0.5, 0.5, 0)}
}

func vecNear(a, b core.Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}
