// Package testutil provides utilities for testing ftty-install in
// isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Layout holds the isolated directories SetupEnv created, mirroring
// the paths a real run touches.
type Layout struct {
	ProjectRoot string
	LibDir      string
	InstallDir  string
	BinDir      string
}

// SetupEnv creates isolated per-test directories so installer tests
// never touch the real /opt, /usr/local, or the developer's build
// tree. It also points FTTY_LIB_DIR at the isolated lib dir, since
// config loading honors that override.
//
// Cleanup is handled by t.TempDir().
func SetupEnv(t *testing.T) *Layout {
	t.Helper()

	tmpDir := t.TempDir()

	layout := &Layout{
		ProjectRoot: filepath.Join(tmpDir, "project"),
		LibDir:      filepath.Join(tmpDir, "lib"),
		InstallDir:  filepath.Join(tmpDir, "opt", "carbonyl"),
		BinDir:      filepath.Join(tmpDir, "bin"),
	}

	dirs := []string{
		layout.ProjectRoot,
		layout.LibDir,
		filepath.Dir(layout.InstallDir),
		layout.BinDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	t.Setenv("FTTY_LIB_DIR", layout.LibDir)

	return layout
}

// BinLink returns the isolated PATH-link location.
func (l *Layout) BinLink() string {
	return filepath.Join(l.BinDir, "carbonyl")
}

// WriteFile creates a file with the given contents and mode, creating
// parent directories as needed.
func WriteFile(t *testing.T, path string, contents []byte, mode os.FileMode) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, mode); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
