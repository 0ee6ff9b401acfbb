package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Key went down
	Release             // Key went up
)

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	default:
		return "unknown"
	}
}
