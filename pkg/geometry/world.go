package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// World is an ordered collection of shapes. It is appended to while a scene
// is built and only read while rendering.
type World struct {
	shapes []Shape
}

// NewWorld creates a world containing shapes in order
func NewWorld(shapes ...Shape) *World {
	w := &World{}
	w.Add(shapes...)
	return w
}

// Add appends shapes to the world
func (w *World) Add(shapes ...Shape) {
	w.shapes = append(w.shapes, shapes...)
}

// Len returns the number of shapes
func (w *World) Len() int {
	return len(w.shapes)
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []Shape {
	return w.shapes
}

// Hit returns the nearest intersection among all shapes
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range w.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
