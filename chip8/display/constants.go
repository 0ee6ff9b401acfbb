package display

import "image/color"

// Screen geometry of the virtual machine
const (
	// ScreenWidth is the number of pixel columns exposed by the machine
	ScreenWidth = 64
	// ScreenHeight is the number of pixel rows exposed by the machine
	ScreenHeight = 32
)

// DefaultPixelScale is the default scaling factor for machine pixels, a
// 960x480 window
const DefaultPixelScale = 15

// Color constants
var (
	// Background is the color of unset pixels and of the cleared frame
	Background = color.RGBA{R: 0, G: 0, B: 0, A: FullAlpha}
	// Foreground is the color of set pixels
	Foreground = color.RGBA{R: 255, G: 255, B: 255, A: FullAlpha}
)

// FullAlpha is the alpha value for fully opaque pixels
const FullAlpha = 255
