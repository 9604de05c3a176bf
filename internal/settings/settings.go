// Package settings loads devtools' own configuration using Viper.
//
// Values come, in decreasing precedence, from bound command-line flags,
// DEVTOOLS_* environment variables, an optional .devtools.{toml,yaml,yml,json}
// file in the working directory, and built-in defaults. JSON settings files
// may contain comments and trailing commas.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/devtools/internal/resolver"
)

// EnvPrefix is the prefix for environment overrides, e.g. DEVTOOLS_LOG_LEVEL.
const EnvPrefix = "DEVTOOLS"

// Keys used with Viper.
const (
	KeyLogLevel    = "log_level"
	KeyAssetsDir   = "assets_dir"
	KeyManifest    = "manifest"
	KeyFormatter   = "tools.formatter"
	KeyChecker     = "tools.checker"
	KeyTypeChecker = "tools.typechecker"
)

// fileBase is the settings file name without extension.
const fileBase = ".devtools"

// fileTypes lists the accepted settings file extensions in lookup order.
var fileTypes = []string{"toml", "yaml", "yml", "json"}

// Settings is the resolved devtools configuration.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	AssetsDir string `mapstructure:"assets_dir"`
	Manifest  string `mapstructure:"manifest"`
	Tools     Tools  `mapstructure:"tools"`
}

// Tools holds the executable names for the wrapped tools.
type Tools struct {
	Formatter   string `mapstructure:"formatter"`
	Checker     string `mapstructure:"checker"`
	TypeChecker string `mapstructure:"typechecker"`
}

// DefaultTools are the executables used when nothing overrides them.
var DefaultTools = Tools{Formatter: "black", Checker: "ruff", TypeChecker: "mypy"}

// New returns a Viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the built-in defaults. assets_dir has no static
// default; an empty value means the per-version user cache directory.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "INFO")
	v.SetDefault(KeyAssetsDir, "")
	v.SetDefault(KeyManifest, resolver.DefaultManifest)
	v.SetDefault(KeyFormatter, DefaultTools.Formatter)
	v.SetDefault(KeyChecker, DefaultTools.Checker)
	v.SetDefault(KeyTypeChecker, DefaultTools.TypeChecker)
}

// ReadFile loads the first .devtools.<ext> file found in dir into v and
// returns its path. It returns "" and no error when there is none.
func ReadFile(v *viper.Viper, dir string) (string, error) {
	for _, ext := range fileTypes {
		p := filepath.Join(dir, fileBase+"."+ext)
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("read settings file: %w", err)
		}

		if ext == "json" {
			data = jsonc.ToJSON(data)
		}
		v.SetConfigType(ext)
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return "", fmt.Errorf("parse settings file %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}

// Load unmarshals v into Settings and fills empty tool names with defaults.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if s.Manifest == "" {
		s.Manifest = resolver.DefaultManifest
	}
	if s.Tools.Formatter == "" {
		s.Tools.Formatter = DefaultTools.Formatter
	}
	if s.Tools.Checker == "" {
		s.Tools.Checker = DefaultTools.Checker
	}
	if s.Tools.TypeChecker == "" {
		s.Tools.TypeChecker = DefaultTools.TypeChecker
	}
	return &s, nil
}
