package models

// MinBodyLength is the shortest issue description, in characters, worth sending to a model.
const MinBodyLength = 40

type (
	// ProcessingConfig holds the per-run knobs of the title pipeline.
	ProcessingConfig struct {
		SkipLabel       string
		RequiredLabels  []string
		AutoUpdate      bool
		Quiet           bool
		StripCharacters string
		MinBodyLength   int
	}

	// ScanOptions filters the issues considered by a scan.
	ScanOptions struct {
		DaysToScan     int
		IncludeClosed  bool
		RequiredLabels []string
		MaxIssues      int
	}
)

// DefaultProcessingConfig returns a config with the standard skip-label and body threshold.
func DefaultProcessingConfig() ProcessingConfig {
	return ProcessingConfig{
		SkipLabel:     "titled",
		MinBodyLength: MinBodyLength,
	}
}
