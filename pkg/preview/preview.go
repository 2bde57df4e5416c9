// Package preview draws rendered frames as terminal cells using upper half
// blocks, two image rows per terminal row.
package preview

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const halfBlock = "▀"

// Preview draws a frame scaled to the target area with nearest-neighbour sampling
type Preview struct {
	Frame *renderer.Frame
}

var _ uv.Drawable = (*Preview)(nil)

// Size returns the cell grid for a preview cols wide that keeps the frame's
// aspect ratio
func Size(frame *renderer.Frame, cols int) (int, int) {
	if cols <= 0 || frame.Width == 0 || frame.Height == 0 {
		return 0, 0
	}
	// Each cell covers one pixel column and two pixel rows
	rows := (cols*frame.Height + frame.Width) / (2 * frame.Width)
	return cols, max(rows, 1)
}

// Draw renders the frame into area of scr
func (p *Preview) Draw(scr uv.Screen, area uv.Rectangle) {
	cols, rows := area.Dx(), area.Dy()
	if cols <= 0 || rows <= 0 || len(p.Frame.Pixels) == 0 {
		return
	}

	for row := 0; row < rows; row++ {
		topY := (2 * row) * p.Frame.Height / (2 * rows)
		botY := (2*row + 1) * p.Frame.Height / (2 * rows)

		for col := 0; col < cols; col++ {
			x := col * p.Frame.Width / cols

			cell := &uv.Cell{
				Content: halfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: p.pixel(x, topY),
					Bg: p.pixel(x, botY),
				},
			}
			scr.SetCell(area.Min.X+col, area.Min.Y+row, cell)
		}
	}
}

func (p *Preview) pixel(x, y int) color.Color {
	return output.ToRGBA(p.Frame.At(x, y))
}

// Render returns the frame as a styled string cols cells wide
func Render(frame *renderer.Frame, cols int) string {
	cols, rows := Size(frame, cols)
	if cols == 0 {
		return ""
	}

	scr := uv.NewScreenBuffer(cols, rows)
	preview := &Preview{Frame: frame}
	preview.Draw(scr, scr.Bounds())
	return scr.Render()
}
