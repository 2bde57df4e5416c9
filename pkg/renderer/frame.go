package renderer

import "github.com/df07/go-sphere-tracer/pkg/core"

// Frame holds the linear colors of a finished render in row-major order,
// top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Color
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Color, width*height),
	}
}

// At returns the color at column x of row y
func (f *Frame) At(x, y int) core.Color {
	return f.Pixels[y*f.Width+x]
}

// Set stores the color at column x of row y
func (f *Frame) Set(x, y int, c core.Color) {
	f.Pixels[y*f.Width+x] = c
}

// Row returns the pixels of row y, sharing the frame's storage
func (f *Frame) Row(y int) []core.Color {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}
