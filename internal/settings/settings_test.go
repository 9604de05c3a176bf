package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	s, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "INFO", s.LogLevel)
	assert.Equal(t, "", s.AssetsDir)
	assert.Equal(t, "pyproject.toml", s.Manifest)
	assert.Equal(t, Tools{Formatter: "black", Checker: "ruff", TypeChecker: "mypy"}, s.Tools)
}

// TestEmptyValuesFallBackToDefaults checks that blanking a key in the
// settings file restores the built-in value instead of an empty name.
func TestEmptyValuesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".devtools.toml", "manifest = \"\"\n\n[tools]\nchecker = \"\"\n")

	v := New()
	_, err := ReadFile(v, dir)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "pyproject.toml", s.Manifest)
	assert.Equal(t, DefaultTools, s.Tools)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DEVTOOLS_LOG_LEVEL", "debug")
	t.Setenv("DEVTOOLS_TOOLS_CHECKER", "/opt/ruff/bin/ruff")

	s, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "/opt/ruff/bin/ruff", s.Tools.Checker)
	assert.Equal(t, "black", s.Tools.Formatter)
}

func TestReadFileTOML(t *testing.T) {
	dir := t.TempDir()
	want := writeSettings(t, dir, ".devtools.toml", `
log_level = "WARNING"
manifest = "pkg/pyproject.toml"

[tools]
typechecker = "dmypy"
`)

	v := New()
	used, err := ReadFile(v, dir)
	require.NoError(t, err)
	assert.Equal(t, want, used)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "WARNING", s.LogLevel)
	assert.Equal(t, "pkg/pyproject.toml", s.Manifest)
	assert.Equal(t, "dmypy", s.Tools.TypeChecker)
}

func TestReadFileYAML(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".devtools.yaml", "tools:\n  formatter: blackd-client\n")

	v := New()
	_, err := ReadFile(v, dir)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "blackd-client", s.Tools.Formatter)
}

// TestReadFileJSONWithComments verifies that comments and trailing commas
// are accepted in JSON settings files.
func TestReadFileJSONWithComments(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".devtools.json", `{
  // pinned toolchain
  "tools": {
    "checker": "ruff-0.4", /* pinned */
  },
}`)

	v := New()
	_, err := ReadFile(v, dir)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "ruff-0.4", s.Tools.Checker)
}

func TestReadFilePrefersTOML(t *testing.T) {
	dir := t.TempDir()
	want := writeSettings(t, dir, ".devtools.toml", `log_level = "ERROR"`)
	writeSettings(t, dir, ".devtools.json", `{"log_level": "DEBUG"}`)

	used, err := ReadFile(New(), dir)
	require.NoError(t, err)
	assert.Equal(t, want, used)
}

func TestReadFileNone(t *testing.T) {
	used, err := ReadFile(New(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestReadFileMalformed(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".devtools.toml", "log_level = [")

	_, err := ReadFile(New(), dir)
	assert.Error(t, err)
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	writeSettings(t, dir, ".devtools.toml", `log_level = "ERROR"`)
	t.Setenv("DEVTOOLS_LOG_LEVEL", "DEBUG")

	v := New()
	_, err := ReadFile(v, dir)
	require.NoError(t, err)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", s.LogLevel)
}
