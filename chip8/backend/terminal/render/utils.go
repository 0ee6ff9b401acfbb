package render

// HalfBlock returns the character drawing two vertically stacked pixels in
// one terminal cell, using the foreground color for set pixels.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
