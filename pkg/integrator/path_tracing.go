package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Config controls ray bounds, bounce budget and the sky gradient
type Config struct {
	MaxDepth         int        // Maximum number of bounces; 0 traces nothing
	TMin             float64    // Minimum hit distance, > 0 to avoid self-intersection
	TMax             float64    // Maximum hit distance
	BackgroundTop    core.Color // Sky color straight up
	BackgroundBottom core.Color // Sky color straight down
}

// DefaultConfig returns the reference trace settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:         32,
		TMin:             0.0001,
		TMax:             math.Inf(1),
		BackgroundTop:    core.NewVec3(0.5, 0.7, 1.0),
		BackgroundBottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate checks the trace settings
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.TMin <= 0 {
		return fmt.Errorf("tMin must be positive, got %g", c.TMin)
	}
	if c.TMax <= c.TMin {
		return fmt.Errorf("tMax (%g) must exceed tMin (%g)", c.TMax, c.TMin)
	}
	return nil
}

// PathTracingIntegrator implements unidirectional path tracing over material scattering
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		config: config,
	}
}

// Config returns the trace settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor follows ray through the world until it escapes to the sky, is
// absorbed, or runs out of bounces. Each bounce multiplies the carried
// attenuation, which is equivalent to attenuation * RayColor(scattered, depth-1).
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Color {
	throughput := core.NewVec3(1, 1, 1)

	for depth := pt.config.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, pt.config.TMin, pt.config.TMax)
		if !isHit {
			return throughput.MultiplyVec(pt.BackgroundGradient(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}

// BackgroundGradient returns the sky color seen along r
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*bottom + a*top
	return pt.config.BackgroundBottom.Multiply(1.0 - a).Add(pt.config.BackgroundTop.Multiply(a))
}
