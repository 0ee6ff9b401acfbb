package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/display"
)

// recordingSurface keeps every draw call so tests can inspect the frame
type recordingSurface struct {
	bounds   image.Rectangle
	color    color.RGBA
	clears   []color.RGBA
	fills    []image.Rectangle
	fillInk  []color.RGBA
	presents int
}

func (s *recordingSurface) Bounds() image.Rectangle   { return s.bounds }
func (s *recordingSurface) SetDrawColor(c color.RGBA) { s.color = c }
func (s *recordingSurface) Clear()                    { s.clears = append(s.clears, s.color) }
func (s *recordingSurface) Present()                  { s.presents++ }
func (s *recordingSurface) FillRect(r image.Rectangle) {
	s.fills = append(s.fills, r)
	s.fillInk = append(s.fillInk, s.color)
}

func TestRenderer_EmptyDisplay(t *testing.T) {
	d := NewDisplay(display.ScreenWidth, display.ScreenHeight)
	r := NewRenderer(display.DefaultPixelScale)
	s := &recordingSurface{}

	n := r.Draw(s, d)

	assert.Equal(t, 0, n)
	assert.Empty(t, s.fills, "all-false grid should not fill any rectangle")
	require.Len(t, s.clears, 1)
	assert.Equal(t, display.Background, s.clears[0])
	assert.Equal(t, 1, s.presents)
}

func TestRenderer_SinglePixel(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		scale int
		want  image.Rectangle
	}{
		{"origin", 0, 0, 15, image.Rect(0, 0, 15, 15)},
		{"middle", 10, 5, 15, image.Rect(150, 75, 165, 90)},
		{"bottom right", 63, 31, 15, image.Rect(945, 465, 960, 480)},
		{"unscaled", 7, 3, 1, image.Rect(7, 3, 8, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisplay(display.ScreenWidth, display.ScreenHeight)
			d.SetPixel(tt.x, tt.y, true)
			s := &recordingSurface{}

			n := NewRenderer(tt.scale).Draw(s, d)

			assert.Equal(t, 1, n)
			require.Len(t, s.fills, 1)
			assert.Equal(t, tt.want, s.fills[0])
			assert.Equal(t, display.Foreground, s.fillInk[0])
		})
	}
}

func TestRenderer_ClearsBeforeFillAndPresentsOnce(t *testing.T) {
	d := NewDisplay(4, 2)
	d.SetPixel(0, 0, true)
	d.SetPixel(3, 1, true)
	s := &recordingSurface{}

	r := NewRenderer(2)
	r.Draw(s, d)

	assert.Len(t, s.clears, 1)
	assert.Equal(t, []image.Rectangle{image.Rect(0, 0, 2, 2), image.Rect(6, 2, 8, 4)}, s.fills)
	assert.Equal(t, 1, s.presents)
}

func TestScaleFor(t *testing.T) {
	assert.Equal(t, 15, ScaleFor(image.Rect(0, 0, 960, 480), 64, 32))
	assert.Equal(t, 1, ScaleFor(image.Rect(0, 0, 64, 32), 64, 32))
	assert.Equal(t, 2, ScaleFor(image.Rect(0, 0, 200, 64), 64, 32), "limited by height")
	assert.Equal(t, 1, ScaleFor(image.Rect(0, 0, 10, 10), 64, 32), "never below 1")
}
