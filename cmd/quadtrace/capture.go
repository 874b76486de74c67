package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"quaddecode/quadrature"
)

// Capture is a recording of encoder pin samples taken at a fixed rate.
type Capture struct {
	Name         string
	SampleRateHz int  // 0 if unknown
	ActiveLow    bool // pins read 11 at rest
	Segments     []Segment
}

// Segment is one continuous acquisition. Segments of a capture are not
// contiguous in time, so decoding restarts at each one.
type Segment struct {
	Label   string
	Samples []quadrature.Symbol
}

// captureFile is the on-disk YAML layout of a capture.
//
//	name: ky040-bench
//	sample_rate_hz: 10000
//	segments:
//	  - label: one detent cw
//	    samples: ["00", "01", "11", "10", "00"]
type captureFile struct {
	Name         string        `yaml:"name"`
	SampleRateHz int           `yaml:"sample_rate_hz"`
	ActiveLow    bool          `yaml:"active_low"`
	Segments     []segmentFile `yaml:"segments"`
}

type segmentFile struct {
	Label   string   `yaml:"label"`
	Samples []string `yaml:"samples"`
}

// captureFormatFor resolves an explicit format or picks one from the file
// extension.
func captureFormatFor(path, format string) string {
	if format != captureFormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return captureFormatYAML
	default:
		return captureFormatRaw
	}
}

// LoadCapture reads a capture from path in the given format ("" = auto).
func LoadCapture(path, format string) (Capture, error) {
	path = ExpandPath(path)

	switch captureFormatFor(path, format) {
	case captureFormatYAML:
		b, err := os.ReadFile(path)
		if err != nil {
			return Capture{}, fmt.Errorf("read capture: %w", err)
		}
		c, err := decodeYAMLCapture(bytes.NewReader(b))
		if err != nil {
			return Capture{}, fmt.Errorf("decode capture %s: %w", path, err)
		}
		if c.Name == "" {
			c.Name = filepath.Base(path)
		}
		return c, nil

	case captureFormatRaw:
		samples, err := readRawCapture(path)
		if err != nil {
			return Capture{}, fmt.Errorf("read raw capture %s: %w", path, err)
		}
		return Capture{
			Name:     filepath.Base(path),
			Segments: []Segment{{Label: "raw", Samples: samples}},
		}, nil

	default:
		return Capture{}, fmt.Errorf("unknown capture format %q", format)
	}
}

// decodeYAMLCapture parses the YAML capture layout.
func decodeYAMLCapture(r io.Reader) (Capture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f captureFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Capture{}, errors.New("capture is empty")
		}
		return Capture{}, err
	}
	if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
		return Capture{}, errors.New("unexpected trailing document")
	}

	if f.SampleRateHz < 0 {
		return Capture{}, errors.New("sample_rate_hz must be >= 0")
	}
	if len(f.Segments) == 0 {
		return Capture{}, errors.New("capture has no segments")
	}

	c := Capture{
		Name:         f.Name,
		SampleRateHz: f.SampleRateHz,
		ActiveLow:    f.ActiveLow,
		Segments:     make([]Segment, 0, len(f.Segments)),
	}
	for i, sf := range f.Segments {
		label := sf.Label
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		seg := Segment{Label: label, Samples: make([]quadrature.Symbol, 0, len(sf.Samples))}
		for j, s := range sf.Samples {
			sym, err := parseSymbol(s)
			if err != nil {
				return Capture{}, fmt.Errorf("sample %d of segment %q: %w", j, label, err)
			}
			seg.Samples = append(seg.Samples, sym)
		}
		c.Segments = append(c.Segments, seg)
	}
	return c, nil
}

// parseSymbol parses a two-character "BA" bit string such as "01".
func parseSymbol(s string) (quadrature.Symbol, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid sample %q: want two bits, pin B first", s)
	}
	var sym quadrature.Symbol
	for i := 0; i < 2; i++ {
		sym <<= 1
		switch s[i] {
		case '0':
		case '1':
			sym |= 1
		default:
			return 0, fmt.Errorf("invalid sample %q: want two bits, pin B first", s)
		}
	}
	return sym, nil
}

// symbolsFromBytes converts a raw dump, one byte per sample with pin A in
// bit 0 and pin B in bit 1. Other bits are ignored.
func symbolsFromBytes(b []byte) []quadrature.Symbol {
	out := make([]quadrature.Symbol, len(b))
	for i, v := range b {
		out[i] = quadrature.Symbol(v & 0b11)
	}
	return out
}

func checkRawSize(size int64) error {
	if size == 0 {
		return errors.New("capture is empty")
	}
	if size > maxRawCaptureBytes {
		return fmt.Errorf("capture is too large (%d bytes, max %d)", size, maxRawCaptureBytes)
	}
	return nil
}
