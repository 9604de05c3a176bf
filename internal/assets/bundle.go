package assets

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/shinji-kodama/devtools/internal/model"
)

//go:embed config
var embedded embed.FS

// embeddedDir is the directory inside the embedded FS holding the defaults.
const embeddedDir = "config"

// Bundle is the set of default config files installed in a single directory.
type Bundle struct {
	dir string
}

// NewBundle returns a Bundle rooted at dir. Nothing touches the filesystem
// until Install or Verify is called.
func NewBundle(dir string) *Bundle {
	return &Bundle{dir: dir}
}

// DefaultDir returns the install directory used when none is configured:
// <user cache dir>/devtools/<version>/config, one directory per release.
func DefaultDir(version string) (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache dir: %w", err)
	}
	return filepath.Join(cacheDir, "devtools", version, embeddedDir), nil
}

// Dir returns the directory the bundle is installed into.
func (b *Bundle) Dir() string {
	return b.dir
}

// Path returns the bundled default path for the given kind.
func (b *Bundle) Path(kind model.ConfigKind) string {
	return filepath.Join(b.dir, kind.Filename())
}

// Install writes every embedded default into the bundle directory, skipping
// files whose on-disk content already matches, and then verifies the result.
func (b *Bundle) Install() error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitInstallError,
			fmt.Sprintf("failed to create bundled config dir %s", b.dir), err)
	}

	for _, kind := range model.AllKinds {
		if err := b.installFile(kind.Filename()); err != nil {
			return model.WrapCLIError(model.ExitInstallError,
				fmt.Sprintf("failed to install bundled %s", kind.Filename()), err)
		}
	}

	return b.Verify()
}

func (b *Bundle) installFile(name string) error {
	want, err := embedded.ReadFile(path.Join(embeddedDir, name))
	if err != nil {
		return err
	}

	target := filepath.Join(b.dir, name)
	if have, err := os.ReadFile(target); err == nil && bytes.Equal(have, want) {
		return nil
	}

	// Write to a sibling temp file and rename so a concurrent devtools run
	// never observes a half-written default.
	tmp, err := os.CreateTemp(b.dir, "."+name+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(want); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// Verify checks that every bundled default exists and is a regular file.
func (b *Bundle) Verify() error {
	for _, kind := range model.AllKinds {
		p := b.Path(kind)
		info, err := os.Stat(p)
		if err != nil {
			return model.WrapCLIError(model.ExitInstallError,
				fmt.Sprintf("bundled default %s is missing (broken installation)", kind.Filename()), err)
		}
		if !info.Mode().IsRegular() {
			return model.NewCLIError(model.ExitInstallError,
				fmt.Sprintf("bundled default %s is not a regular file (broken installation)", p))
		}
	}
	return nil
}
