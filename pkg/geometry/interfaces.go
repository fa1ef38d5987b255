package geometry

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Shapes are built once and then only read, so Hit may be called from many
// goroutines at the same time.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}
