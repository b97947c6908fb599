// Package installer composes the final carbonyl installation from the
// extracted upstream tree plus the two locally resolved libraries, and
// wires up the dependency symlink chain and PATH entry point.
//
// Every filesystem mutation goes through the FS capability so the
// composition logic can be exercised against a sandboxed or failing
// filesystem in tests; the OS-backed implementation is what production
// runs use (typically under elevated rights, since the install dir and
// bin link live in system locations).
package installer

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the privileged filesystem-mutation capability. Symlink has
// replace-if-exists semantics; everything else mirrors the os package.
type FS interface {
	RemoveAll(path string) error
	MkdirAll(path string, perm os.FileMode) error
	// CopyTree recursively copies every entry under src into dst,
	// preserving file modes and symlinks. dst must already exist.
	CopyTree(src, dst string) error
	CopyFile(src, dst string, perm os.FileMode) error
	// Symlink creates or replaces a symlink at linkPath pointing to
	// target.
	Symlink(target, linkPath string) error
	Rename(oldPath, newPath string) error
}

// OSFS implements FS against the real filesystem.
type OSFS struct{}

// NewOSFS creates the OS-backed filesystem capability.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// RemoveAll removes path and everything below it.
func (o *OSFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// MkdirAll creates path and any missing parents.
func (o *OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyTree recursively copies src into dst, preserving modes and
// symlinks.
func (o *OSFS) CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := entry.Info()
		if err != nil {
			return err
		}

		switch {
		case entry.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())

		case info.Mode()&os.ModeSymlink != 0:
			linkTarget, err := os.Readlink(path)
			if err != nil {
				return err
			}
			os.Remove(target)
			return os.Symlink(linkTarget, target)

		default:
			return o.CopyFile(path, target, info.Mode().Perm())
		}
	})
}

// CopyFile copies a single file's bytes to dst with the given mode.
func (o *OSFS) CopyFile(src, dst string, perm os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer source.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, source); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}

	return out.Close()
}

// Symlink creates linkPath pointing at target, replacing any existing
// file or link at linkPath. The replacement is done through a uniquely
// suffixed temp link plus rename so an existing link is never left
// half-replaced.
func (o *OSFS) Symlink(target, linkPath string) error {
	tmpPath := linkPath + ".new"
	os.Remove(tmpPath)

	if err := os.Symlink(target, tmpPath); err != nil {
		return fmt.Errorf("create symlink %s: %w", linkPath, err)
	}

	if err := os.Rename(tmpPath, linkPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace symlink %s: %w", linkPath, err)
	}

	return nil
}

// Rename moves oldPath to newPath.
func (o *OSFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}
