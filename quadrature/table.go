package quadrature

type transition struct {
	next State
	dir  Direction
}

// transitions is indexed by [current state][input symbol].
//
// The encoder rests at 00. Clockwise is the Gray cycle 00→01→11→10→00,
// counter-clockwise is 00→10→11→01→00. A direction is only emitted on the
// edge that closes a cycle back into Start. Edges that flip both bits, or
// that do not continue the cycle in progress, fall back to Start or hold
// position without emitting.
//
// This is the classic full-step table for encoders pulled up to 11 at rest
// (brianlow/Rotary), with both input bits inverted so rest reads 00 and the
// clockwise and counter-clockwise halves swapped to match. The detent
// therefore closes on 00 here where the pulled-up table closes on 11.
var transitions = [numStates][numSymbols]transition{
	// input:  00, 01, 10, 11
	Start:    {{Start, None}, {CWBegin, None}, {CCWBegin, None}, {Start, None}},
	CWBegin:  {{Start, None}, {CWBegin, None}, {Start, None}, {CWNext, None}},
	CWNext:   {{Start, None}, {Start, None}, {CWFinal, None}, {CWNext, None}},
	CWFinal:  {{Start, Clockwise}, {CWBegin, None}, {CWFinal, None}, {CWNext, None}},
	CCWBegin: {{Start, None}, {Start, None}, {CCWBegin, None}, {CCWNext, None}},
	CCWNext:  {{Start, None}, {CCWFinal, None}, {CCWBegin, None}, {CCWNext, None}},
	CCWFinal: {{Start, CounterClockwise}, {CCWFinal, None}, {Start, None}, {CCWNext, None}},
}

// Next returns the state and direction the table assigns to (s, sym)
// without touching any decoder. States outside the known set are treated
// as Start.
func Next(s State, sym Symbol) (State, Direction) {
	if s >= numStates {
		s = Start
	}
	t := transitions[s][sym&0b11]
	return t.next, t.dir
}
