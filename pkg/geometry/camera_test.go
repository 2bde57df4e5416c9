package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

func squareCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  2,
		Height: 2,
		VFov:   90,
	}
}

func TestCamera_PixelRays(t *testing.T) {
	camera := NewCamera(squareCameraConfig())

	tests := []struct {
		name              string
		row               int
		vOffset           float64
		column            int
		hOffset           float64
		expectedDirection core.Vec3
	}{
		{"top left pixel center", 0, 0, 0, 0, core.NewVec3(-0.5, 0.5, 1)},
		{"bottom right pixel center", 1, 0, 1, 0, core.NewVec3(0.5, -0.5, 1)},
		{"top right pixel center", 0, 0, 1, 0, core.NewVec3(0.5, 0.5, 1)},
		{"viewport corner", 0, -0.5, 0, -0.5, core.NewVec3(-1, 1, 1)},
		{"image center", 0, 0.5, 0, 0.5, core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRayForPixelWithOffset(tt.row, tt.vOffset, tt.column, tt.hOffset)
			if ray.Origin != camera.Position() {
				t.Errorf("Expected ray origin %v, got %v", camera.Position(), ray.Origin)
			}
			if !vecApproxEqual(ray.Direction, tt.expectedDirection, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expectedDirection, ray.Direction)
			}
		})
	}
}

func TestCamera_GetRayForPixel_MatchesZeroOffset(t *testing.T) {
	camera := NewCamera(squareCameraConfig())
	if camera.GetRayForPixel(1, 0) != camera.GetRayForPixelWithOffset(1, 0, 0, 0) {
		t.Error("Expected GetRayForPixel to equal zero-offset ray")
	}
}

func TestCamera_AspectRatioAndFocalLength(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 2), // focal length 2
		Up:     core.NewVec3(0, 1, 0),
		Width:  400,
		Height: 200,
		VFov:   90,
	}
	camera := NewCamera(config)

	// viewport is 4 high and 8 wide at distance 2
	corner := camera.GetRayForPixelWithOffset(0, -0.5, 0, -0.5)
	if !vecApproxEqual(corner.Direction, core.NewVec3(-4, 2, 2), 1e-9) {
		t.Errorf("Expected corner direction (-4, 2, 2), got %v", corner.Direction)
	}

	opposite := camera.GetRayForPixelWithOffset(config.Height-1, 0.5, config.Width-1, 0.5)
	if !vecApproxEqual(opposite.Direction, core.NewVec3(4, -2, 2), 1e-9) {
		t.Errorf("Expected corner direction (4, -2, 2), got %v", opposite.Direction)
	}
}

func TestCamera_OffsetPosition(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(3, 2, 1),
		LookAt: core.NewVec3(3, 2, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  2,
		Height: 2,
		VFov:   90,
	}
	camera := NewCamera(config)

	ray := camera.GetRayForPixelWithOffset(0, 0.5, 0, 0.5)
	if ray.Origin != config.Center {
		t.Errorf("Expected origin %v, got %v", config.Center, ray.Origin)
	}
	if !vecApproxEqual(ray.Direction.Normalize(), core.NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("Expected central ray along -Z, got %v", ray.Direction)
	}
}

func TestCamera_LookingAlongX(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(1, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  2,
		Height: 2,
		VFov:   90,
	}
	camera := NewCamera(config)

	// Looking down +X with Y up, screen right is -Z
	ray := camera.GetRayForPixel(0, 1)
	if !vecApproxEqual(ray.Direction, core.NewVec3(1, 0.5, -0.5), 1e-12) {
		t.Errorf("Expected direction (1, 0.5, -0.5), got %v", ray.Direction)
	}
	if math.Abs(ray.Direction.Y-0.5) > 1e-12 {
		t.Errorf("Expected top row to point up, got %v", ray.Direction)
	}
}

func TestCamera_LookingAlongNegativeZ(t *testing.T) {
	config := squareCameraConfig()
	config.LookAt = core.NewVec3(0, 0, -1)
	camera := NewCamera(config)

	// Turning around flips screen right to -X
	ray := camera.GetRayForPixel(0, 0)
	if !vecApproxEqual(ray.Direction, core.NewVec3(0.5, 0.5, -1), 1e-12) {
		t.Errorf("Expected direction (0.5, 0.5, -1), got %v", ray.Direction)
	}
}

func TestCamera_ScreenRightIsCrossOfViewAndUp(t *testing.T) {
	config := CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, 1),
		Up:     core.NewVec3(0, 1, 0),
		Width:  500,
		Height: 400,
		VFov:   90,
	}
	camera := NewCamera(config)

	w := config.Center.Subtract(config.LookAt).Normalize()
	right := w.Cross(config.Up).Normalize()
	if !vecApproxEqual(right, core.NewVec3(1, 0, 0), 1e-12) {
		t.Fatalf("Expected screen right +X, got %v", right)
	}

	left := camera.GetRayForPixel(200, 0)
	if left.Direction.X >= 0 || left.Direction.Dot(right) >= 0 {
		t.Errorf("Expected column 0 on the left (X < 0), got %v", left.Direction)
	}
	rightEdge := camera.GetRayForPixel(200, config.Width-1)
	if rightEdge.Direction.X <= 0 {
		t.Errorf("Expected last column on the right (X > 0), got %v", rightEdge.Direction)
	}
	top := camera.GetRayForPixel(0, 250)
	if top.Direction.Y <= 0 {
		t.Errorf("Expected row 0 to point up, got %v", top.Direction)
	}
	// Pixel (0, 0) center: viewport is 2.5 x 2 at distance 1
	if !vecApproxEqual(camera.GetRayForPixel(0, 0).Direction, core.NewVec3(-1.2475, 0.9975, 1), 1e-9) {
		t.Errorf("Expected top left direction (-1.2475, 0.9975, 1), got %v", camera.GetRayForPixel(0, 0).Direction)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*CameraConfig)
		expectErr bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }, true},
		{"negative height", func(c *CameraConfig) { c.Height = -1 }, true},
		{"zero fov", func(c *CameraConfig) { c.VFov = 0 }, true},
		{"fov 180", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"look at self", func(c *CameraConfig) { c.LookAt = c.Center }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := squareCameraConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.expectErr {
				t.Errorf("Expected error %t, got %v", tt.expectErr, err)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	defaults := squareCameraConfig()
	merged := MergeCameraConfig(defaults, CameraConfig{Width: 640, VFov: 40})

	if merged.Width != 640 || merged.VFov != 40 {
		t.Errorf("Expected overrides applied, got %+v", merged)
	}
	if merged.Height != defaults.Height || merged.LookAt != defaults.LookAt {
		t.Errorf("Expected defaults preserved, got %+v", merged)
	}
}
