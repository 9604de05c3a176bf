package resolver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultManifest is the manifest filename read from the working directory.
const DefaultManifest = "pyproject.toml"

var (
	// ErrManifestNotFound is returned when the manifest file does not exist.
	ErrManifestNotFound = errors.New("project manifest not found")

	// ErrPackageNameMissing is returned when neither supported table
	// carries a name field.
	ErrPackageNameMissing = errors.New("package name not found in project manifest")
)

// NameSource records which manifest table supplied the package name.
type NameSource string

const (
	// NameFromProject is the standard [project] table.
	NameFromProject NameSource = "project.name"

	// NameFromPoetry is the [tool.poetry] table.
	NameFromPoetry NameSource = "tool.poetry.name"
)

// namePaths lists the key paths consulted, in priority order.
var namePaths = []struct {
	source NameSource
	keys   []string
}{
	{NameFromProject, []string{"project", "name"}},
	{NameFromPoetry, []string{"tool", "poetry", "name"}},
}

// NameLookup is the result of looking the package name up in a parsed
// manifest. Found is false when no supported location had a string name.
type NameLookup struct {
	Name   string
	Source NameSource
	Found  bool
}

// PackageName reads the manifest at path and returns the package name.
func PackageName(path string) (string, error) {
	res, err := LookupPackageName(path)
	if err != nil {
		return "", err
	}
	return res.Name, nil
}

// LookupPackageName reads the manifest at path and reports the package name
// together with the table it came from. A manifest without a name yields
// ErrPackageNameMissing.
func LookupPackageName(path string) (NameLookup, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return NameLookup{}, err
	}

	res := LookupName(doc)
	if !res.Found {
		return NameLookup{}, fmt.Errorf("%s: %w (looked in [project] and [tool.poetry])", path, ErrPackageNameMissing)
	}
	return res, nil
}

// ReadManifest parses a TOML manifest into a generic key-value tree.
func ReadManifest(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			abs, _ := filepath.Abs(path)
			return nil, fmt.Errorf("%s: %w", abs, ErrManifestNotFound)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return doc, nil
}

// LookupName walks the supported key paths and returns the first non-empty
// string name found.
func LookupName(doc map[string]any) NameLookup {
	for _, p := range namePaths {
		if name, ok := stringAt(doc, p.keys); ok && name != "" {
			return NameLookup{Name: name, Source: p.source, Found: true}
		}
	}
	return NameLookup{}
}

func stringAt(tree map[string]any, keys []string) (string, bool) {
	var node any = tree
	for _, k := range keys {
		table, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = table[k]; !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	return s, ok
}
