// Package quadrature decodes two-channel rotary encoder samples into detent
// events.
//
// A Decoder is fed one (pinA, pinB) sample per polling tick and reports a
// Direction once per completed detent. Contact bounce and electrical noise
// never produce a spurious event: out-of-sequence samples are absorbed by the
// transition table instead of being treated as errors.
package quadrature

// State is the position of the decoder inside a detent cycle.
//
// The zero value is Start.
type State uint8

const (
	Start State = iota // idle, between detents

	CWBegin // first clockwise edge seen
	CWNext  // second clockwise edge seen
	CWFinal // third clockwise edge seen, next edge completes the detent

	CCWBegin
	CCWNext
	CCWFinal

	numStates
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case CWBegin:
		return "CWBegin"
	case CWNext:
		return "CWNext"
	case CWFinal:
		return "CWFinal"
	case CCWBegin:
		return "CCWBegin"
	case CCWNext:
		return "CCWNext"
	case CCWFinal:
		return "CCWFinal"
	default:
		return "Unknown"
	}
}
