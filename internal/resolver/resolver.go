package resolver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/devtools/internal/model"
)

// Defaults supplies the bundled default path for a config kind.
// *assets.Bundle satisfies it.
type Defaults interface {
	Path(kind model.ConfigKind) string
}

// Resolver resolves config kinds against a search root.
type Resolver struct {
	root     string
	defaults Defaults
}

// New creates a Resolver. An empty root means the current working directory,
// looked up at resolve time.
func New(root string, defaults Defaults) *Resolver {
	return &Resolver{root: root, defaults: defaults}
}

// Resolve returns the path for kind. If override is non-empty it is used
// as is (the flag parser has already checked it exists).
// All returned paths are absolute.
func (r *Resolver) Resolve(kind model.ConfigKind, override string) (model.ConfigReference, error) {
	if !kind.IsValid() {
		return model.ConfigReference{}, fmt.Errorf("resolve: invalid config kind %q", kind)
	}

	if override != "" {
		p, err := filepath.Abs(override)
		if err != nil {
			return model.ConfigReference{}, fmt.Errorf("resolve %s: %w", override, err)
		}
		return model.ConfigReference{Kind: kind, Path: p, Source: model.SourceFlag}, nil
	}

	root, err := r.searchRoot()
	if err != nil {
		return model.ConfigReference{}, err
	}

	p, source := Lookup(kind.Filename(), root, r.defaults.Path(kind))
	abs, err := filepath.Abs(p)
	if err != nil {
		return model.ConfigReference{}, fmt.Errorf("resolve %s: %w", p, err)
	}
	return model.ConfigReference{Kind: kind, Path: abs, Source: source}, nil
}

// Lint resolves the checker and formatter configs into a LintConfig.
// Empty overrides fall back to project lookup.
func (r *Resolver) Lint(checkerOverride, formatterOverride string) (model.LintConfig, error) {
	checker, err := r.Resolve(model.KindChecker, checkerOverride)
	if err != nil {
		return model.LintConfig{}, err
	}
	formatter, err := r.Resolve(model.KindFormatter, formatterOverride)
	if err != nil {
		return model.LintConfig{}, err
	}
	return model.LintConfig{CheckerConfig: checker.Path, FormatterConfig: formatter.Path}, nil
}

func (r *Resolver) searchRoot() (string, error) {
	if r.root != "" {
		return r.root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("determine working directory: %w", err)
	}
	return wd, nil
}

// Lookup returns root/name when it is a regular file, and fallback otherwise.
// A missing file is never an error.
func Lookup(name, root, fallback string) (string, model.ConfigSource) {
	candidate := filepath.Join(root, name)
	if IsRegularFile(candidate) {
		return candidate, model.SourceProject
	}
	return fallback, model.SourceBundled
}

// IsRegularFile reports whether p exists and is a regular file, following
// symlinks.
func IsRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
