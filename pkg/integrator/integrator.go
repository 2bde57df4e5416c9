package integrator

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color carried back along ray.
	// world is only read, so one world may be shared by concurrent callers
	// as long as each passes its own sampler.
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Color
}
