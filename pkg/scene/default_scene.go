package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// DefaultCameraConfig looks down +z from the origin with a 90 degree field
// of view, which puts the image plane one unit in front of the camera
func DefaultCameraConfig() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  500,
		Height: 400,
		VFov:   90.0,
	}
}

// NewDefaultScene creates the reference scene: a green sphere resting on a
// huge red ground sphere
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := mergeCamera(DefaultCameraConfig(), cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(1.0, 0.0, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.0, 1.0, 0.0))

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, 1), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(0, -100.5, 1), 100, materialGround),
	)

	return &Scene{
		Name:           "default",
		World:          world,
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}
