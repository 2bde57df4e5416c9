package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewMaterialsScene creates a row of spheres showing every material:
// a hollow glass sphere on the left, diffuse in the middle, fuzzy gold on the right
func NewMaterialsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	defaultCameraConfig := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  500,
		Height: 400,
		VFov:   90.0,
	}
	cameraConfig := mergeCamera(defaultCameraConfig, cameraOverrides)

	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 50 // Glass needs more samples to converge
	samplingConfig.MaxDepth = 50

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	// Air inside glass: the inverted ratio turns the inner sphere into a bubble
	materialBubble := material.NewDielectric(1.0 / 1.5)
	materialGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGold),
	)

	return &Scene{
		Name:           "materials",
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
	}
}
