//go:build basic || database || integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedInsightsPath holds the path to a shared insights binary built once for all tests.
	sharedInsightsPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getInsightsBinary returns the path to the insights binary, building it once if needed.
func getInsightsBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "insights-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		insightsPath := filepath.Join(tempDir, "insights")
		buildCmd := exec.Command("go", "build", "-o", insightsPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build insights: %v\n%s", err, out))
		}

		sharedInsightsPath = insightsPath
	})

	return sharedInsightsPath
}

// runInsights runs the binary in dir and returns its stdout. Failures are logged
// with the combined output.
func runInsights(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getInsightsBinary(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
	}
	return stdout.String(), err
}

// fixtureTree writes a small JavaScript project and returns its root.
func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"src/index.js":        "const util = require('./lib/util');\nmodule.exports = function main(a) {\n  if (a || util(a)) { return 1; }\n  return 0;\n};\n",
		"src/lib/util.js":     "// helper\nmodule.exports = function util(x) { return !!x; };\n",
		"test/util.js":        "module.exports = function util(x) { return !!x; };\n",
		"node_modules/x/a.js": "ignored();\n",
		"README.md":           "# fixture\n",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}
