package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const version = "1.0.0"

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "quadtrace v%s\n", version)
	fmt.Fprintln(w, "Replay rotary encoder pin captures through the quadrature decoder")
}

func printUsage(w io.Writer) {
	printVersion(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  quadtrace [OPTIONS] [CAPTURE]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "DESCRIPTION:")
	fmt.Fprintln(w, "  Decodes a recorded capture of the two encoder pins and reports the detents")
	fmt.Fprintln(w, "  found per segment, together with the noise the decoder absorbed (double")
	fmt.Fprintln(w, "  edges, aborted cycles). Useful for checking wiring and sampling rate on the")
	fmt.Fprintln(w, "  bench before the decoder goes into a control loop.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprintln(w, "  -config string")
	fmt.Fprintln(w, "        YAML config file (flags override values from the file)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -capture string")
	fmt.Fprintln(w, "        Capture file (may also be given as the only argument)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -capture-format string")
	fmt.Fprintln(w, "        Capture format: yaml|raw (default: by extension, .yaml/.yml is yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -sample-rate-hz int")
	fmt.Fprintln(w, "        Sample rate of the capture; overrides the rate recorded in it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -active-low")
	fmt.Fprintln(w, "        Invert both pins before decoding (pull-up wiring, idles at 11)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -report-format string")
	fmt.Fprintf(w, "        Report format: text|yaml (default %q)\n", reportFormatText)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -events")
	fmt.Fprintln(w, "        Log every detent (requires -log-level debug)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -burst-window-ms int")
	fmt.Fprintf(w, "        Window for peak same-direction detents, 0 disables (default %d)\n", defaultBurstWindowMS)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -log-level string")
	fmt.Fprintf(w, "        Log level: error, warn, info, debug (default %q)\n", defaultLogLevel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -version")
	fmt.Fprintln(w, "        Print version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CAPTURE FORMATS:")
	fmt.Fprintln(w, "  raw   one byte per sample, bit 0 = pin A, bit 1 = pin B")
	fmt.Fprintln(w, "  yaml  name, sample_rate_hz, active_low, segments: [{label, samples: [\"00\", \"01\", ...]}]")
	fmt.Fprintln(w, "        samples are written pin B first")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  quadtrace -sample-rate-hz 20000 knob.bin")
	fmt.Fprintln(w, "  quadtrace -report-format yaml -events -log-level debug fixtures/bounce.yaml")
	fmt.Fprintln(w)
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run parses args, replays the capture and writes the report to stdout.
func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("quadtrace", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	var (
		configPath    = fs.String("config", "", "YAML config file")
		capturePath   = fs.String("capture", "", "Capture file")
		captureFormat = fs.String("capture-format", captureFormatAuto, "Capture format: yaml|raw")
		sampleRateHz  = fs.Int("sample-rate-hz", 0, "Sample rate of the capture in Hz")
		activeLow     = fs.Bool("active-low", false, "Invert both pins before decoding")
		reportFormat  = fs.String("report-format", reportFormatText, "Report format: text|yaml")
		reportEvents  = fs.Bool("events", false, "Log every detent at debug level")
		burstWindowMS = fs.Int("burst-window-ms", defaultBurstWindowMS, "Burst detection window in ms")
		logLevelStr   = fs.String("log-level", defaultLogLevel, "Log level: error, warn, info, debug")
		showVersion   = fs.Bool("version", false, "Print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		printVersion(stdout)
		return nil
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfigFile(*configPath); err != nil {
			return err
		}
	}

	// Only flags given on the command line override the file.
	var o FlagOverrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capture":
			o.CapturePath = capturePath
		case "capture-format":
			o.CaptureFormat = captureFormat
		case "sample-rate-hz":
			o.SampleRateHz = sampleRateHz
		case "active-low":
			o.ActiveLow = activeLow
		case "report-format":
			o.ReportFormat = reportFormat
		case "events":
			o.ReportEvents = reportEvents
		case "burst-window-ms":
			o.BurstWindowMS = burstWindowMS
		case "log-level":
			o.LogLevel = logLevelStr
		}
	})
	switch fs.NArg() {
	case 0:
	case 1:
		p := fs.Arg(0)
		o.CapturePath = &p
	default:
		return fmt.Errorf("expected at most one capture file, got %d", fs.NArg())
	}
	o.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	logger := setupLogger(stderr, level)

	c, err := LoadCapture(cfg.Capture.Path, cfg.Capture.Format)
	if err != nil {
		return err
	}
	logger.Debug("capture loaded",
		"name", c.Name,
		"segments", len(c.Segments),
		"sample_rate_hz", c.SampleRateHz,
		"active_low", c.ActiveLow,
	)

	rep := Replay(c, ReplayOptions{
		ActiveLow:    cfg.Capture.ActiveLow,
		SampleRateHz: cfg.Capture.SampleRateHz,
		BurstWindow:  cfg.BurstWindow(),
		LogEvents:    cfg.Report.Events,
	}, logger)

	return writeReport(stdout, rep, cfg.Report.Format)
}
