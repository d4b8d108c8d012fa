// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/huangsam/codeinsights/internal/contract"
	"github.com/huangsam/codeinsights/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	cfg *contract.Config
}

// NewOutWriter creates a new output writer for one run.
func NewOutWriter(cfg *contract.Config) *OutWriter {
	return &OutWriter{cfg: cfg}
}

// WriteComplexity prints js-complex results using the configured output format.
func (ow *OutWriter) WriteComplexity(result *schema.ComplexityResult) error {
	return WriteComplexityResult(result, ow.cfg)
}

// WriteLOC prints loc results using the configured output format.
func (ow *OutWriter) WriteLOC(result *schema.LOCResult) error {
	return WriteLOCResult(result, ow.cfg)
}

// WriteDuplicateNames prints dup-names results using the configured output format.
func (ow *OutWriter) WriteDuplicateNames(result *schema.DuplicateResult) error {
	return WriteDuplicateResult(result, ow.cfg)
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and the width taken by the other columns.
func GetMaxTablePathWidth(cfg *contract.Config, otherColumns int) int {
	termWidth := cfg.Width // absolute override from flag/env

	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve generous space for table borders, separators, and padding
	available := termWidth - otherColumns - 20
	if available < 15 {
		return 15
	}
	if available > 100 {
		return 100
	}
	return available
}
