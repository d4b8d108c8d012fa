package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/codeinsights/schema"
)

// Severity label constants.
const (
	HealthyValue   = "Healthy"   // Healthy value
	CautionedValue = "Cautioned" // Cautioned value
	FlaggedValue   = "Flagged"   // Flagged value
)

// Color variables for console output.
var (
	FlaggedColor   = color.New(color.FgRed, color.Bold) // FlaggedColor marks low maintainability.
	CautionedColor = color.New(color.FgYellow)          // CautionedColor marks medium maintainability.
	HealthyColor   = color.New(color.FgGreen)           // HealthyColor marks everything above medium.
)

// GetPlainLabel returns a plain text label for the maintainability band of mi.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(mi float64) string {
	switch schema.SeverityOf(mi) {
	case schema.SeverityFlagged:
		return FlaggedValue
	case schema.SeverityCautioned:
		return CautionedValue
	default:
		return HealthyValue
	}
}

// SeverityColor returns the console color of the maintainability band of mi.
func SeverityColor(mi float64) *color.Color {
	switch schema.SeverityOf(mi) {
	case schema.SeverityFlagged:
		return FlaggedColor
	case schema.SeverityCautioned:
		return CautionedColor
	default:
		return HealthyColor
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(mi float64) string {
	return SeverityColor(mi).Sprint(GetPlainLabel(mi))
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".insights_history.db"
	}
	return filepath.Join(homeDir, ".insights_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
