package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// CameraConfig contains the camera placement and image geometry
type CameraConfig struct {
	Center core.Point3 // Camera position
	LookAt core.Point3 // Point the camera looks at; its distance is the focal length
	Up     core.Vec3   // World up direction
	Width  int         // Image width in pixels
	Height int         // Image height in pixels
	VFov   float64     // Vertical field of view in degrees
}

// Validate reports configurations that would produce a degenerate camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	view := c.LookAt.Subtract(c.Center)
	if view.NearZero() {
		return errors.New("camera position and look-at point coincide")
	}
	if view.Cross(c.Up).NearZero() {
		return errors.New("up vector is parallel to the view direction")
	}
	return nil
}

// MergeCameraConfig overrides defaults with the non-zero fields of override
func MergeCameraConfig(defaults, override CameraConfig) CameraConfig {
	result := defaults
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	return result
}

// Camera maps pixel coordinates to world-space rays
type Camera struct {
	position     core.Point3
	topLeftPixel core.Point3 // Center of pixel (0, 0)
	pixelDeltaH  core.Vec3   // Offset to the pixel on the right
	pixelDeltaV  core.Vec3   // Offset to the pixel above
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := w.Cross(config.Up).Normalize()
	v := u.Cross(w)

	focalLength := config.LookAt.Subtract(config.Center).Length()
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2) * focalLength
	viewportWidth := viewportHeight * float64(config.Width) / float64(config.Height)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)

	pixelDeltaH := horizontal.Divide(float64(config.Width))
	pixelDeltaV := vertical.Divide(float64(config.Height))

	viewportTopLeft := config.Center.
		Subtract(w.Multiply(focalLength)).
		Subtract(horizontal.Multiply(0.5)).
		Add(vertical.Multiply(0.5))
	topLeftPixel := viewportTopLeft.
		Add(pixelDeltaH.Multiply(0.5)).
		Subtract(pixelDeltaV.Multiply(0.5))

	return &Camera{
		position:     config.Center,
		topLeftPixel: topLeftPixel,
		pixelDeltaH:  pixelDeltaH,
		pixelDeltaV:  pixelDeltaV,
	}
}

// Position returns the camera origin
func (c *Camera) Position() core.Point3 {
	return c.position
}

// GetRayForPixelWithOffset returns the ray through pixel (row, column) shifted by
// vOffset rows and hOffset columns. Offsets in [-0.5, 0.5] stay within the pixel.
func (c *Camera) GetRayForPixelWithOffset(row int, vOffset float64, column int, hOffset float64) core.Ray {
	u := float64(column) + hOffset
	v := float64(row) + vOffset
	pixelCenter := c.topLeftPixel.
		Add(c.pixelDeltaH.Multiply(u)).
		Subtract(c.pixelDeltaV.Multiply(v))

	return core.NewRay(c.position, pixelCenter.Subtract(c.position))
}

// GetRayForPixel returns the ray through the center of pixel (row, column)
func (c *Camera) GetRayForPixel(row, column int) core.Ray {
	return c.GetRayForPixelWithOffset(row, 0, column, 0)
}
