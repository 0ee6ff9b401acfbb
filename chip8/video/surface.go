package video

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

// ImageSurface is an in-memory Surface. Drawing goes to a back buffer which is
// copied to the front image on Present.
type ImageSurface struct {
	mu    sync.RWMutex
	back  *image.RGBA
	front *image.RGBA
	ink   image.Uniform
}

// NewImageSurface creates a surface of the given size in pixels.
func NewImageSurface(width, height int) *ImageSurface {
	bounds := image.Rect(0, 0, width, height)
	return &ImageSurface{
		back:  image.NewRGBA(bounds),
		front: image.NewRGBA(bounds),
		ink:   image.Uniform{C: color.RGBA{}},
	}
}

func (s *ImageSurface) Bounds() image.Rectangle {
	return s.back.Bounds()
}

func (s *ImageSurface) SetDrawColor(c color.RGBA) {
	s.ink.C = c
}

func (s *ImageSurface) Clear() {
	draw.Draw(s.back, s.back.Bounds(), &s.ink, image.Point{}, draw.Src)
}

func (s *ImageSurface) FillRect(r image.Rectangle) {
	draw.Draw(s.back, r.Intersect(s.back.Bounds()), &s.ink, image.Point{}, draw.Src)
}

func (s *ImageSurface) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.front.Pix, s.back.Pix)
}

// Image returns a copy of the last presented frame.
func (s *ImageSurface) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img := image.NewRGBA(s.front.Bounds())
	copy(img.Pix, s.front.Pix)
	return img
}

// At returns the presented color at x, y.
func (s *ImageSurface) At(x, y int) color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.front.RGBAAt(x, y)
}
