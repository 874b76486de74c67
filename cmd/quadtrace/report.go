package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// writeReport renders rep in the given format.
func writeReport(w io.Writer, rep Report, format string) error {
	switch format {
	case reportFormatYAML:
		return writeYAMLReport(w, rep)
	case reportFormatText:
		return writeTextReport(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func writeYAMLReport(w io.Writer, rep Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

func writeTextReport(w io.Writer, rep Report) error {
	rate := "unknown rate"
	if rep.SampleRateHz > 0 {
		rate = fmt.Sprintf("%d Hz", rep.SampleRateHz)
	}
	wiring := "active-high"
	if rep.ActiveLow {
		wiring = "active-low"
	}
	fmt.Fprintf(w, "capture: %s (%d segments, %s, %s)\n\n", rep.Capture, len(rep.Segments), rate, wiring)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEGMENT\tSAMPLES\tCW\tCCW\tNET\tDOUBLE-EDGES\tABORTED\tEND")
	for _, s := range rep.Segments {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%+d\t%d\t%d\t%s\n",
			s.Label, s.Samples, s.Clockwise, s.CounterClockwise, s.Net, s.DoubleEdges, s.AbortedCycles, s.EndState)
	}
	t := rep.Total
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t%+d\t%d\t%d\t\n",
		t.Samples, t.Clockwise, t.CounterClockwise, t.Net, t.DoubleEdges, t.AbortedCycles)
	if err := tw.Flush(); err != nil {
		return err
	}

	if rep.BurstWindowMS > 0 {
		_, err := fmt.Fprintf(w, "\npeak burst: %d detents in %dms\n", rep.PeakBurst, rep.BurstWindowMS)
		return err
	}
	return nil
}
