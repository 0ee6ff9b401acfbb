package video

// Display is a monochrome pixel grid, owned by the machine and read by the host.
type Display struct {
	width  int
	height int
	pixels []bool
}

// NewDisplay creates a cleared display with the specified size.
func NewDisplay(width, height int) *Display {
	return &Display{
		width:  width,
		height: height,
		pixels: make([]bool, width*height),
	}
}

func (d *Display) Width() int {
	return d.width
}

func (d *Display) Height() int {
	return d.height
}

// Pixel reports whether the pixel at x, y is set. Out of range coordinates
// read as unset.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return false
	}
	return d.pixels[y*d.width+x]
}

// SetPixel sets or clears the pixel at x, y. Out of range writes are dropped.
func (d *Display) SetPixel(x, y int, on bool) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	d.pixels[y*d.width+x] = on
}

// Clear unsets every pixel.
func (d *Display) Clear() {
	for i := range d.pixels {
		d.pixels[i] = false
	}
}
