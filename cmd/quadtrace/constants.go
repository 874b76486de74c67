package main

// Capture formats
const (
	captureFormatAuto = ""
	captureFormatYAML = "yaml"
	captureFormatRaw  = "raw"
)

// Report formats
const (
	reportFormatText = "text"
	reportFormatYAML = "yaml"
)

const (
	defaultBurstWindowMS = 200 // Window for peak same-direction detent detection (ms)
	defaultLogLevel      = "info"

	// Raw captures are one byte per sample; refuse anything that would not
	// comfortably fit in memory once widened to symbols.
	maxRawCaptureBytes = 1 << 30
)
