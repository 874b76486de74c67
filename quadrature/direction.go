package quadrature

// Direction is the result of a single Process call.
type Direction uint8

const (
	None Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case None:
		return "None"
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return "Unknown"
	}
}

// Step maps a direction to a signed position delta:
// +1 for Clockwise, -1 for CounterClockwise, 0 for None.
func (d Direction) Step() int {
	switch d {
	case Clockwise:
		return 1
	case CounterClockwise:
		return -1
	default:
		return 0
	}
}
