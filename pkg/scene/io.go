package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Vec3 is a JSON [x, y, z] triple
type Vec3 [3]float64

func (v Vec3) toCore() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Color is a linear RGB triple. In JSON it is either an [r, g, b] array of
// linear values or an sRGB "#rrggbb" hex string.
type Color [3]float64

// UnmarshalJSON accepts both color notations
func (c *Color) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		var hex string
		if err := json.Unmarshal(data, &hex); err != nil {
			return err
		}
		parsed, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("invalid hex color %q: %w", hex, err)
		}
		r, g, b := parsed.LinearRgb()
		*c = Color{r, g, b}
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("color must be [r, g, b] or \"#rrggbb\": %w", err)
	}
	*c = Color(rgb)
	return nil
}

func (c Color) toCore() core.Color {
	return core.NewVec3(c[0], c[1], c[2])
}

// Material types understood by the loader
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// MaterialDescription describes surface properties
type MaterialDescription struct {
	Type   string  `json:"type"`
	Albedo Color   `json:"albedo"`         // lambertian and metal
	Fuzz   float64 `json:"fuzz,omitempty"` // metal, clamped to [0, 1]
	IOR    float64 `json:"ior,omitempty"`  // dielectric
}

// SphereDescription is a single sphere in a scene file
type SphereDescription struct {
	Center   Vec3                `json:"center"`
	Radius   float64             `json:"radius"`
	Material MaterialDescription `json:"material"`
}

// CameraDescription describes the viewpoint; zero fields keep the default camera
type CameraDescription struct {
	Center *Vec3   `json:"center,omitempty"`
	LookAt *Vec3   `json:"look_at,omitempty"`
	Up     *Vec3   `json:"up,omitempty"`
	VFov   float64 `json:"vfov,omitempty"`
}

// SamplingDescription overrides render settings. Zero sizes and sample counts
// keep the defaults; max_depth and seed apply whenever present, including 0.
type SamplingDescription struct {
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Samples  int    `json:"samples,omitempty"`
	MaxDepth *int   `json:"max_depth,omitempty"`
	Seed     *int64 `json:"seed,omitempty"`
}

// Description is the on-disk form of a scene
type Description struct {
	Name     string              `json:"name,omitempty"`
	Summary  string              `json:"description,omitempty"`
	Camera   CameraDescription   `json:"camera"`
	Sampling SamplingDescription `json:"sampling"`
	Spheres  []SphereDescription `json:"spheres"`
}

// Load reads a scene from a JSON file. The scene is named after the file
// unless the file sets a name.
func Load(path string) (*Scene, error) {
	desc, err := LoadDescription(path)
	if err != nil {
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return desc.Scene()
}

// LoadDescription reads a scene description from a JSON file
func LoadDescription(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var desc Description
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&desc); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &desc, nil
}

// Save writes a scene description to a JSON file
func Save(path string, desc *Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Scene converts the description into a scene, validating every sphere
func (d *Description) Scene() (*Scene, error) {
	if len(d.Spheres) == 0 {
		return nil, errors.New("scene has no spheres")
	}

	world := geometry.NewWorld()
	for i, sd := range d.Spheres {
		sphere, err := sd.sphere()
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}

	return &Scene{
		Name:           d.Name,
		World:          world,
		CameraConfig:   d.cameraConfig(),
		SamplingConfig: d.samplingConfig(),
	}, nil
}

func (d *Description) cameraConfig() geometry.CameraConfig {
	config := DefaultCameraConfig()
	if d.Camera.Center != nil {
		config.Center = d.Camera.Center.toCore()
	}
	if d.Camera.LookAt != nil {
		config.LookAt = d.Camera.LookAt.toCore()
	}
	if d.Camera.Up != nil {
		config.Up = d.Camera.Up.toCore()
	}
	if d.Camera.VFov != 0 {
		config.VFov = d.Camera.VFov
	}
	return config
}

func (d *Description) samplingConfig() renderer.SamplingConfig {
	config := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		Width:           d.Sampling.Width,
		Height:          d.Sampling.Height,
		SamplesPerPixel: d.Sampling.Samples,
	})
	if d.Sampling.MaxDepth != nil {
		config.MaxDepth = *d.Sampling.MaxDepth
	}
	if d.Sampling.Seed != nil {
		config.Seed = *d.Sampling.Seed
	}
	return config
}

func (sd SphereDescription) sphere() (*geometry.Sphere, error) {
	if !(sd.Radius > 0) || math.IsInf(sd.Radius, 0) {
		return nil, fmt.Errorf("radius must be positive and finite, got %g", sd.Radius)
	}
	mat, err := sd.Material.material()
	if err != nil {
		return nil, err
	}
	return geometry.NewSphere(sd.Center.toCore(), sd.Radius, mat), nil
}

func (md MaterialDescription) material() (material.Material, error) {
	switch strings.ToLower(md.Type) {
	case MaterialLambertian:
		return material.NewLambertian(md.Albedo.toCore()), nil
	case MaterialMetal:
		return material.NewMetal(md.Albedo.toCore(), md.Fuzz), nil
	case MaterialDielectric:
		if !(md.IOR > 0) {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %g", md.IOR)
		}
		return material.NewDielectric(md.IOR), nil
	case "":
		return nil, errors.New("material type is required")
	default:
		return nil, fmt.Errorf("unknown material type %q", md.Type)
	}
}
