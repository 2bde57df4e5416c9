package renderer

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// ErrInvalidConfig is returned when a sampling configuration cannot be rendered
var ErrInvalidConfig = errors.New("invalid sampling config")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int     // Image width in pixels
	Height          int     // Image height in pixels
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	TMin            float64 // Minimum hit distance
	TMax            float64 // Maximum hit distance
	Seed            int64   // Base seed for the per-row random sources
	NumWorkers      int     // Number of parallel workers (0 = use CPU count)
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           500,
		Height:          400,
		SamplesPerPixel: 8,
		MaxDepth:        32,
		TMin:            0.0001,
		TMax:            math.Inf(1),
		Seed:            42,
		NumWorkers:      0, // Auto-detect CPU count
	}
}

// Validate checks that the configuration describes a renderable image
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	if err := c.integratorConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c SamplingConfig) integratorConfig() integrator.Config {
	config := integrator.DefaultConfig()
	config.MaxDepth = c.MaxDepth
	config.TMin = c.TMin
	config.TMax = c.TMax
	return config
}

// MergeSamplingConfig overrides base with the non-zero fields of override
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.TMin != 0 {
		result.TMin = override.TMin
	}
	if override.TMax != 0 {
		result.TMax = override.TMax
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.NumWorkers != 0 {
		result.NumWorkers = override.NumWorkers
	}
	return result
}

// RowCallback is invoked after each row is stored in the frame.
// completed counts finished rows including this one.
type RowCallback func(row, completed, total int)

// Raytracer handles the rendering process
type Raytracer struct {
	world       geometry.Shape
	camera      *geometry.Camera
	config      SamplingConfig
	integrator  integrator.Integrator
	logger      core.Logger
	rowCallback RowCallback
}

// NewRaytracer creates a raytracer using a path tracing integrator built
// from config
func NewRaytracer(world geometry.Shape, camera *geometry.Camera, config SamplingConfig, logger core.Logger) *Raytracer {
	return NewRaytracerWithIntegrator(world, camera, config, integrator.NewPathTracingIntegrator(config.integratorConfig()), logger)
}

// NewRaytracerWithIntegrator creates a raytracer that traces with the given integrator
func NewRaytracerWithIntegrator(world geometry.Shape, camera *geometry.Camera, config SamplingConfig, integ integrator.Integrator, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integ,
		logger:     logger,
	}
}

// SetRowCallback registers a progress callback; nil disables it
func (rt *Raytracer) SetRowCallback(callback RowCallback) {
	rt.rowCallback = callback
}

// Config returns the sampling configuration
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// rowSeed derives the seed of a row's random source. Rows never share a
// source, so results do not depend on which worker renders which row.
func rowSeed(seed int64, row int) int64 {
	return int64(uint64(seed) ^ (uint64(row)+1)*0x9E3779B97F4A7C15)
}

// RenderPixel averages SamplesPerPixel samples for one pixel. The first
// sample goes through the pixel center, the rest are jittered by up to half
// a pixel in each direction.
func (rt *Raytracer) RenderPixel(row, column int, sampler core.Sampler) (core.Color, int) {
	var stats PixelStats

	ray := rt.camera.GetRayForPixel(row, column)
	stats.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))

	for sample := 1; sample < rt.config.SamplesPerPixel; sample++ {
		vOffset := core.RandomInRange(sampler, -0.5, 0.5)
		hOffset := core.RandomInRange(sampler, -0.5, 0.5)

		ray := rt.camera.GetRayForPixelWithOffset(row, vOffset, column, hOffset)
		stats.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return stats.GetColor(), stats.SampleCount
}

// RenderRow renders every pixel of row with the row's own random source
func (rt *Raytracer) RenderRow(row int) ([]core.Color, int) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(rowSeed(rt.config.Seed, row))))

	pixels := make([]core.Color, rt.config.Width)
	samples := 0
	for column := range pixels {
		c, n := rt.RenderPixel(row, column, sampler)
		pixels[column] = c
		samples += n
	}
	return pixels, samples
}

// Render traces the whole image in parallel and assembles the rows in order
func (rt *Raytracer) Render() (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	workerPool := NewWorkerPool(rt, rt.config.NumWorkers)

	stats := RenderStats{
		TotalPixels: rt.config.Width * rt.config.Height,
		Rows:        rt.config.Height,
		Workers:     workerPool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel (max depth %d, %d workers)\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, stats.Workers)

	completed := 0
	err := workerPool.Run(rt.config.Height, func(result RowResult) {
		copy(frame.Row(result.Row), result.Pixels)
		stats.TotalSamples += result.Samples
		completed++
		if rt.rowCallback != nil {
			rt.rowCallback(result.Row, completed, rt.config.Height)
		}
	})
	if err != nil {
		return nil, RenderStats{}, fmt.Errorf("render failed: %w", err)
	}

	stats.AverageLuminance = CalculateAverageLuminance(frame)
	stats.Duration = time.Since(startTime)

	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return frame, stats, nil
}
