package main

import (
	"log/slog"
	"math/bits"
	"time"

	"quaddecode/quadrature"
)

// ReplayOptions controls how a capture is decoded.
type ReplayOptions struct {
	ActiveLow    *bool         // overrides Capture.ActiveLow when non-nil
	SampleRateHz int           // overrides Capture.SampleRateHz when > 0
	BurstWindow  time.Duration // 0 disables burst detection
	LogEvents    bool          // log every detent at debug level
}

// Stats summarizes decoding of one segment, or of a whole capture.
type Stats struct {
	Label            string `yaml:"label,omitempty"`
	Samples          int    `yaml:"samples"`
	Clockwise        int    `yaml:"clockwise"`
	CounterClockwise int    `yaml:"counter_clockwise"`
	Net              int    `yaml:"net"`
	DoubleEdges      int    `yaml:"double_edges"`   // both pins changed; sample 0 is compared against rest (00)
	AbortedCycles    int    `yaml:"aborted_cycles"` // fell back to Start without a detent
	EndState         string `yaml:"end_state,omitempty"`
}

func (s *Stats) add(o Stats) {
	s.Samples += o.Samples
	s.Clockwise += o.Clockwise
	s.CounterClockwise += o.CounterClockwise
	s.Net += o.Net
	s.DoubleEdges += o.DoubleEdges
	s.AbortedCycles += o.AbortedCycles
}

// Report is the result of replaying a capture.
type Report struct {
	Capture       string  `yaml:"capture"`
	SampleRateHz  int     `yaml:"sample_rate_hz,omitempty"`
	ActiveLow     bool    `yaml:"active_low"`
	Segments      []Stats `yaml:"segments"`
	Total         Stats   `yaml:"total"`
	BurstWindowMS int     `yaml:"burst_window_ms,omitempty"`
	PeakBurst     int     `yaml:"peak_burst,omitempty"`
}

// resolve applies the option overrides to the values recorded in c.
func (opts ReplayOptions) resolve(c Capture) (rate int, activeLow bool) {
	rate = c.SampleRateHz
	if opts.SampleRateHz > 0 {
		rate = opts.SampleRateHz
	}
	activeLow = c.ActiveLow
	if opts.ActiveLow != nil {
		activeLow = *opts.ActiveLow
	}
	return rate, activeLow
}

// Replay feeds every segment of c through a single decoder, resetting it at
// segment boundaries.
func Replay(c Capture, opts ReplayOptions, logger *slog.Logger) Report {
	rate, activeLow := opts.resolve(c)

	var burst *burstTracker
	switch {
	case opts.BurstWindow <= 0:
	case rate == 0:
		logger.Warn("burst detection needs a sample rate, skipping", "capture", c.Name)
	default:
		burst = newBurstTracker(opts.BurstWindow)
	}

	rep := Report{
		Capture:      c.Name,
		SampleRateHz: rate,
		ActiveLow:    activeLow,
		Segments:     make([]Stats, 0, len(c.Segments)),
	}

	dec := quadrature.New()
	for i, seg := range c.Segments {
		dec.Reset()
		if burst != nil {
			burst.reset()
		}

		st := Stats{Label: seg.Label, Samples: len(seg.Samples)}
		// The decoder restarts at Start, i.e. at rest.
		prev := quadrature.Sym00
		for j, sym := range seg.Samples {
			if activeLow {
				sym ^= quadrature.Sym11
			}
			if bits.OnesCount8(uint8(prev^sym)) == 2 {
				st.DoubleEdges++
			}
			prev = sym

			before := dec.State()
			dir := dec.ProcessSymbol(sym)

			switch dir {
			case quadrature.Clockwise:
				st.Clockwise++
			case quadrature.CounterClockwise:
				st.CounterClockwise++
			case quadrature.None:
				if before != quadrature.Start && dec.State() == quadrature.Start {
					st.AbortedCycles++
				}
				continue
			}
			st.Net += dir.Step()

			var at time.Duration
			if rate > 0 {
				at = time.Duration(j) * time.Second / time.Duration(rate)
			}
			if burst != nil {
				burst.add(at, dir.Step())
			}
			if opts.LogEvents {
				logger.Debug("detent",
					"segment", seg.Label,
					"sample", j,
					"at", at,
					"direction", dir.String(),
				)
			}
		}
		st.EndState = dec.State().String()

		logger.Info("segment decoded",
			"segment", seg.Label,
			"index", i,
			"samples", st.Samples,
			"clockwise", st.Clockwise,
			"counter_clockwise", st.CounterClockwise,
			"aborted_cycles", st.AbortedCycles,
		)
		if st.EndState != quadrature.Start.String() {
			logger.Warn("segment ended mid-detent", "segment", seg.Label, "state", st.EndState)
		}

		rep.Segments = append(rep.Segments, st)
		rep.Total.add(st)
	}

	if burst != nil {
		rep.BurstWindowMS = int(opts.BurstWindow / time.Millisecond)
		rep.PeakBurst = burst.peak
	}
	return rep
}
