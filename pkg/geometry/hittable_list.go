package geometry

import (
	"github.com/df07/go-tiled-pathtracer/pkg/core"
	"github.com/df07/go-tiled-pathtracer/pkg/material"
)

// HittableList is a composite shape that reports the nearest hit among its children.
// Children may themselves be lists.
type HittableList struct {
	Objects []Shape
}

// NewHittableList creates a list holding the given shapes in order
func NewHittableList(objects ...Shape) *HittableList {
	return &HittableList{Objects: append([]Shape(nil), objects...)}
}

// Add appends a shape. Lists must not be modified once rendering starts.
func (l *HittableList) Add(object Shape) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every shape
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of direct children
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit scans children in insertion order, narrowing the search interval to the
// closest hit found so far
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
