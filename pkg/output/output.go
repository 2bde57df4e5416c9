// Package output converts rendered frames into 8-bit images and writes them
// as PPM or PNG files.
package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// quantizeScale maps 1.0 to 255 while keeping values just below 1 out of 256
const quantizeScale = 255.999999

// linearToGamma applies gamma 2 to a linear channel value
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

func quantize(channel float64) uint8 {
	return uint8(quantizeScale * math.Max(0, math.Min(1, linearToGamma(channel))))
}

// ToRGBA converts a linear color to a gamma corrected, clamped 8-bit color
func ToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

// ToImage converts a frame into an RGBA image with the same layout
func ToImage(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(frame.At(x, y)))
		}
	}
	return img
}

// WritePPM writes frame as an ASCII P3 image, one "r g b" line per pixel
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range frame.Pixels {
		rgba := ToRGBA(c)
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", rgba.R, rgba.G, rgba.B); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write PPM trailer: %w", err)
	}

	return bw.Flush()
}

// WritePNG writes frame as a PNG image
func WritePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, ToImage(frame)); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Save writes frame to path, choosing the encoder from the file extension.
// Missing parent directories are created.
func Save(path string, frame *renderer.Frame) (err error) {
	var encode func(io.Writer, *renderer.Frame) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		encode = WritePPM
	case ".png":
		encode = WritePNG
	default:
		return fmt.Errorf("unsupported output format %q (want .ppm or .png)", ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	return encode(file, frame)
}
