package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator.
// It is not safe for concurrent use; every render task owns its own.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomInRange returns a value in [min, max)
func RandomInRange(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3InRange returns a vector whose components are each in [min, max)
func RandomVec3InRange(sampler Sampler, min, max float64) Vec3 {
	s := sampler.Get3D()
	return NewVec3(
		min+(max-min)*s.X,
		min+(max-min)*s.Y,
		min+(max-min)*s.Z,
	)
}

// RandomUnitVector returns a uniformly distributed direction on the unit sphere.
// Points are rejection-sampled from the [-1,1]³ cube; tiny vectors are rejected
// so normalization cannot underflow.
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomVec3InRange(sampler, -1, 1)
		lensq := p.LengthSquared()
		if lensq > 1e-160 && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// SampleSquare returns a sub-pixel offset in [-0.5, 0.5)² with z = 0
func SampleSquare(sampler Sampler) Vec3 {
	s := sampler.Get2D()
	return NewVec3(s.X-0.5, s.Y-0.5, 0)
}
