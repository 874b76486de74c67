package quadrature

// Decoder tracks progress through a detent cycle.
//
// The zero value is ready to use. A Decoder is not safe for concurrent use:
// if Process runs in one goroutine (or interrupt handler) while State or
// Reset are called from another, the caller must serialize those calls.
type Decoder struct {
	state State
}

// New returns a decoder positioned at Start.
func New() *Decoder {
	return &Decoder{state: Start}
}

// Process advances the decoder by one sample of both pins and reports
// whether a detent was completed by it.
//
// It must be called on every sampling tick, fast enough to observe each
// edge of the encoder. It never blocks or allocates.
func (d *Decoder) Process(pinA, pinB bool) Direction {
	return d.ProcessSymbol(SymbolOf(pinA, pinB))
}

// ProcessSymbol is Process for an already packed sample.
// Bits above bit 1 are ignored.
func (d *Decoder) ProcessSymbol(sym Symbol) Direction {
	t := transitions[d.state][sym&0b11]
	d.state = t.next
	return t.dir
}

// Reset forces the decoder back to Start, e.g. after the encoder was
// reconnected.
func (d *Decoder) Reset() {
	d.state = Start
}

// State returns the current state. Intended for diagnostics.
func (d *Decoder) State() State {
	return d.state
}
