package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/devtools/internal/model"
)

// fakeDefaults maps every kind into a fixed bundle directory.
type fakeDefaults string

func (d fakeDefaults) Path(kind model.ConfigKind) string {
	return filepath.Join(string(d), kind.Filename())
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

// TestResolve checks both branches of the lookup for every kind: a project
// file wins, and its absence falls back to the bundled default.
func TestResolve(t *testing.T) {
	bundle := fakeDefaults("/bundle/config")

	for _, kind := range model.AllKinds {
		t.Run(kind.String()+" present", func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, kind.Filename()), "")

			ref, err := New(root, bundle).Resolve(kind, "")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, kind.Filename()), ref.Path)
			assert.Equal(t, model.SourceProject, ref.Source)
			assert.Equal(t, kind, ref.Kind)
		})

		t.Run(kind.String()+" absent", func(t *testing.T) {
			ref, err := New(t.TempDir(), bundle).Resolve(kind, "")
			require.NoError(t, err)
			assert.Equal(t, bundle.Path(kind), ref.Path)
			assert.Equal(t, model.SourceBundled, ref.Source)
		})
	}
}

// TestResolveDirectoryIsNotAConfig ensures a directory named like a config
// file does not shadow the bundled default.
func TestResolveDirectoryIsNotAConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "ruff.toml"), 0o755))

	ref, err := New(root, fakeDefaults("/bundle")).Resolve(model.KindChecker, "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceBundled, ref.Source)
}

// TestResolveMalformedFileIsPassedThrough confirms resolution only checks
// existence: garbage content is still the project's config.
func TestResolveMalformedFileIsPassedThrough(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "black.toml"), "[[[ not toml")

	ref, err := New(root, fakeDefaults("/bundle")).Resolve(model.KindFormatter, "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceProject, ref.Source)
}

func TestResolveOverride(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ruff.toml"), "")
	chdir(t, root)

	ref, err := New(root, fakeDefaults("/bundle")).Resolve(model.KindChecker, "custom.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "custom.toml"), ref.Path)
	assert.Equal(t, model.SourceFlag, ref.Source)
}

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mypy.ini"), "[mypy]\n")
	chdir(t, root)

	ref, err := New("", fakeDefaults("/bundle")).Resolve(model.KindTypeChecker, "")
	require.NoError(t, err)
	assert.Equal(t, model.SourceProject, ref.Source)
	assert.Equal(t, "mypy.ini", filepath.Base(ref.Path))
}

func TestResolveInvalidKind(t *testing.T) {
	_, err := New(t.TempDir(), fakeDefaults("/bundle")).Resolve(model.ConfigKind("eslint"), "")
	assert.Error(t, err)
}

func TestLint(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ruff.toml"), "")

	cfg, err := New(root, fakeDefaults("/bundle")).Lint("", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ruff.toml"), cfg.CheckerConfig)
	assert.Equal(t, filepath.Join("/bundle", "black.toml"), cfg.FormatterConfig)
}

func TestLookup(t *testing.T) {
	root := t.TempDir()

	p, source := Lookup("black.toml", root, "/fallback/black.toml")
	assert.Equal(t, "/fallback/black.toml", p)
	assert.Equal(t, model.SourceBundled, source)

	writeFile(t, filepath.Join(root, "black.toml"), "")
	p, source = Lookup("black.toml", root, "/fallback/black.toml")
	assert.Equal(t, filepath.Join(root, "black.toml"), p)
	assert.Equal(t, model.SourceProject, source)
}
