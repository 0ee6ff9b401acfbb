package video

import (
	"image"
	"image/color"

	"github.com/valerio/go-chip8/chip8/display"
)

// Surface is a drawing target with back-buffered presentation: nothing drawn
// becomes visible until Present is called.
type Surface interface {
	// Bounds returns the drawable area in surface coordinates.
	Bounds() image.Rectangle
	SetDrawColor(c color.RGBA)
	// Clear fills the whole surface with the current draw color.
	Clear()
	// FillRect fills r with the current draw color.
	FillRect(r image.Rectangle)
	// Present makes the frame drawn since the last Present visible.
	Present()
}

// Renderer rasterizes a Display as filled, axis-aligned rectangles.
type Renderer struct {
	Scale      int
	Background color.RGBA
	Foreground color.RGBA
}

// NewRenderer creates a renderer with the default colors at the given scale.
func NewRenderer(scale int) *Renderer {
	if scale < 1 {
		scale = 1
	}
	return &Renderer{
		Scale:      scale,
		Background: display.Background,
		Foreground: display.Foreground,
	}
}

// ScaleFor returns the largest integer scale at which a width x height grid
// fits into bounds, never less than 1.
func ScaleFor(bounds image.Rectangle, width, height int) int {
	if width <= 0 || height <= 0 {
		return 1
	}
	scale := bounds.Dx() / width
	if s := bounds.Dy() / height; s < scale {
		scale = s
	}
	if scale < 1 {
		return 1
	}
	return scale
}

// Rects returns the scaled rectangle of every set pixel, in row-major order.
func (r *Renderer) Rects(d *Display) []image.Rectangle {
	var rects []image.Rectangle
	for y := 0; y < d.Height(); y++ {
		for x := 0; x < d.Width(); x++ {
			if d.Pixel(x, y) {
				rects = append(rects, r.cell(x, y))
			}
		}
	}
	return rects
}

// Draw clears s to the background color, fills every set pixel with the
// foreground color and presents the frame. It returns the number of filled
// rectangles.
func (r *Renderer) Draw(s Surface, d *Display) int {
	s.SetDrawColor(r.Background)
	s.Clear()

	rects := r.Rects(d)
	if len(rects) > 0 {
		s.SetDrawColor(r.Foreground)
		for _, rect := range rects {
			s.FillRect(rect)
		}
	}

	s.Present()
	return len(rects)
}

func (r *Renderer) cell(x, y int) image.Rectangle {
	return image.Rect(x*r.Scale, y*r.Scale, (x+1)*r.Scale, (y+1)*r.Scale)
}
