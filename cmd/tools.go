package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/codeinsights/core"
)

// jsComplexCmd reports escomplex-style maintainability for JavaScript files.
var jsComplexCmd = &cobra.Command{
	Use:   "js-complex [root]",
	Short: "Report the maintainability and complexity of JavaScript files",
	Long: `Parse every selected JavaScript file and report escomplex metrics.

Per file:
- Maintainability index (0 to 171), labeled by severity
- Cyclomatic complexity, Halstead effort and logical lines of code
- CommonJS and AMD dependencies

Per project:
- Averages of the per-file metrics
- First-order density, change cost and core size from the dependency matrix

Files below the low maintainability threshold are listed after the report.

Examples:
  # Analyze the current directory
  insights js-complex

  # Only the files under src/api, with per-function detail
  insights js-complex --root ./app --grep '^src/api/' --verbose

  # Everything except tests, as JSON
  insights js-complex --grep '_test\.js$' --invert --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE:    runTool(core.ExecuteJSComplex, true),
}

// locCmd counts lines of code.
var locCmd = &cobra.Command{
	Use:   "loc [root]",
	Short: "Count non-blank, non-comment lines per file",
	Long: `Count the lines of every selected file, skipping blank lines and line comments.

Reports the total, average and largest file, a size histogram, and the
largest and smallest files.

Examples:
  # Count every file not excluded
  insights loc

  # JavaScript only, written as CSV
  insights loc --js-only --output csv --output-file loc.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE:    runTool(core.ExecuteLOC, false),
}

// dupNamesCmd lists file names that occur in more than one directory.
var dupNamesCmd = &cobra.Command{
	Use:   "dup-names [root]",
	Short: "Find files sharing a base name across directories",
	Long: `Group the selected files by base name and list the names used more than once.

Groups whose files all have the same content are marked identical.

Examples:
  # Find duplicated JavaScript module names
  insights dup-names --js-only`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE:    runTool(core.ExecuteDuplicateNames, false),
}
