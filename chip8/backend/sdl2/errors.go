package sdl2

import "errors"

// ErrNotAvailable is returned by Init when the binary was built without SDL2
var ErrNotAvailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")
