package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// oklchToLinear converts OKLCH color values to clamped linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToLinear(l, c, h float64) core.Color {
	r, g, b := colorful.OkLch(l, c, h).Clamped().LinearRgb()
	return core.NewVec3(r, g, b)
}

// NewSphereGridScene creates a grid of metallic spheres whose colors sweep
// hue along x and chroma along z
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),    // Above and behind the grid
		LookAt: core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:     core.NewVec3(0, 1, 0),
		Width:  500,
		Height: 400,
		VFov:   40.0,
	}
	cameraConfig := mergeCamera(defaultCameraConfig, cameraOverrides)

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 16
	samplingConfig.MaxDepth = 40

	world := geometry.NewWorld()

	// Gray ground sphere large enough to read as a plane
	world.Add(geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	gridSize := 10

	// Fit the grid into roughly 9x9 units centered on x=z=4.5
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05 // Near gray
	maxChroma := 0.25 // Vivid

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metalMaterial := material.NewMetal(oklchToLinear(lightness, chroma, hue), roughness)

			world.Add(geometry.NewSphere(position, sphereRadius, metalMaterial))
		}
	}

	return &Scene{
		Name:           "spheregrid",
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}
