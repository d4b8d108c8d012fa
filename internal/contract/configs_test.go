package contract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/core/escomplex"
	"github.com/huangsam/codeinsights/schema"
)

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Root:       ".",
		Glob:       DefaultJSGlob,
		Exclude:    DefaultExclude,
		Workers:    4,
		Precision:  1,
		Output:     "text",
		Color:      "yes",
		Limit:      20,
		Complexity: escomplex.DefaultSettings(),
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "valid grep", mutate: func(in *ConfigRawInput) { in.Grep = `^src/`; in.Invert = true }},
		{name: "invert without grep is ignored", mutate: func(in *ConfigRawInput) { in.Invert = true }},
		{name: "invalid grep", mutate: func(in *ConfigRawInput) { in.Grep = `(` }, expectError: true},
		{name: "invalid exclude", mutate: func(in *ConfigRawInput) { in.Exclude = `[` }, expectError: true},
		{name: "empty exclude", mutate: func(in *ConfigRawInput) { in.Exclude = "" }},
		{name: "empty glob", mutate: func(in *ConfigRawInput) { in.Glob = " " }, expectError: true},
		{name: "invalid glob", mutate: func(in *ConfigRawInput) { in.Glob = "src/[" }, expectError: true},
		{name: "invalid limit (zero)", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (too large)", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: true},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) { in.Output = "PARQUET"; in.OutputFile = "out.parquet" }},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: true},
		{name: "invalid backend", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "oracle" }, expectError: true},
		{name: "sqlite backend", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "SQLite" }},
		{name: "mysql without connection", mutate: func(in *ConfigRawInput) { in.AnalysisBackend = "mysql" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	t.Setenv("DEBUG", "")
	input := validInput()
	input.Root = "testdata/../"
	input.Grep = "lib"
	input.Invert = true
	input.Verbose = true
	input.Matrix = true
	input.Output = "JSON"
	input.DebugFilePath = " src/a.js "
	input.Complexity = escomplex.Settings{ForIn: true}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	wd, err := filepath.Abs(".")
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.Root)
	assert.Equal(t, DefaultJSGlob, cfg.Glob)
	assert.True(t, cfg.Exclude.MatchString("node_modules/x.js"))
	assert.True(t, cfg.Grep.MatchString("lib/a.js"))
	assert.True(t, cfg.Invert)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Matrix)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.Debug)
	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, "src/a.js", cfg.DebugFile)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.Equal(t, escomplex.Settings{ForIn: true}, cfg.Complexity)
}

func TestDebugFromEnvironment(t *testing.T) {
	t.Setenv("DEBUG", "express,insights")
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))
	assert.True(t, cfg.Debug)
}

func TestDefaultExclude(t *testing.T) {
	cfg, err := DefaultConfig(".")
	require.NoError(t, err)

	excluded := []string{
		"node_modules/react/index.js",
		"lib/bower_components/x.js",
		"vendor/jquery.js",
		"build/bundle.js",
		"static/app.js",
		"package.json",
		"sub/package.json",
		".eslintrc.js",
		"npm-shrinkwrap.json",
	}
	for _, p := range excluded {
		assert.True(t, cfg.Exclude.MatchString(p), p)
	}

	kept := []string{"src/build/x.js", "src/static/y.js", "lib/.eslintrc.js", "a.js"}
	for _, p := range kept {
		assert.False(t, cfg.Exclude.MatchString(p), p)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
	assert.Equal(t, escomplex.DefaultSettings(), cfg.Complexity)
	assert.False(t, cfg.UseColors)
	assert.False(t, cfg.Matrix)
	assert.Nil(t, cfg.Grep)
}

func TestConfigParams(t *testing.T) {
	cfg, err := DefaultConfig(".")
	require.NoError(t, err)
	cfg.Grep = nil

	params := cfg.Params()
	assert.Equal(t, DefaultJSGlob, params["glob"])
	assert.Equal(t, DefaultExclude, params["exclude"])
	assert.Equal(t, true, params["logicalor"])
	assert.Equal(t, false, params["matrix"])
	assert.NotContains(t, params, "grep")

	clone := cfg.Clone()
	clone.ResultLimit = 1
	assert.Equal(t, DefaultResultLimit, cfg.ResultLimit)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/insights", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/insights", true},
		{"mysql missing db", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=insights", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=insights", true},
		{"postgres missing db", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
