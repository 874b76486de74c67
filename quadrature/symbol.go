package quadrature

// Symbol is a packed pin sample: (pinB << 1) | pinA.
type Symbol uint8

const (
	Sym00 Symbol = 0b00
	Sym01 Symbol = 0b01 // pinA high
	Sym10 Symbol = 0b10 // pinB high
	Sym11 Symbol = 0b11

	numSymbols = 4
)

// SymbolOf packs two pin levels sampled at the same instant.
func SymbolOf(pinA, pinB bool) Symbol {
	var s Symbol
	if pinA {
		s |= 0b01
	}
	if pinB {
		s |= 0b10
	}
	return s
}

// PinA reports the level of pin A encoded in s.
func (s Symbol) PinA() bool { return s&0b01 != 0 }

// PinB reports the level of pin B encoded in s.
func (s Symbol) PinB() bool { return s&0b10 != 0 }

// String renders the symbol as two bits, pin B first ("01" = B low, A high).
func (s Symbol) String() string {
	switch s & 0b11 {
	case Sym00:
		return "00"
	case Sym01:
		return "01"
	case Sym10:
		return "10"
	default:
		return "11"
	}
}
