package renderer

import (
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	Rows             int           // Number of rows rendered
	Workers          int           // Number of workers used
	AverageLuminance float64       // Mean luminance of the linear frame
	Duration         time.Duration // Wall time of the render
}

// AverageSamples returns the mean samples taken per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum.AddInPlace(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Divide(float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean luminance of the frame's linear colors
func CalculateAverageLuminance(frame *Frame) float64 {
	if len(frame.Pixels) == 0 {
		return 0
	}

	total := 0.0
	for _, c := range frame.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(frame.Pixels))
}
