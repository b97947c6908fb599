package release

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/fidelitty/ftty-install/internal/config"
)

// Extractor is the archive-extraction capability: expand archivePath
// into destDir or report an error.
type Extractor interface {
	Extract(archivePath, destDir string) error
}

// ZipExtractor extracts the upstream zip archives.
type ZipExtractor struct{}

// NewZipExtractor creates a new zip extractor.
func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Extract unpacks a zip archive into destDir, preserving file modes
// and symlinks.
func (e *ZipExtractor) Extract(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	// klauspost's flate is substantially faster than stdlib for the
	// large deflate streams in the upstream archive.
	reader.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, file := range reader.File {
		if err := extractOne(file, destDir); err != nil {
			return err
		}
	}

	return nil
}

// extractOne writes a single archive entry under destDir.
func extractOne(file *zip.File, destDir string) error {
	target := filepath.Join(destDir, file.Name)

	// Security check: prevent path traversal
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path: %s", file.Name)
	}

	mode := file.Mode()

	switch {
	case mode.IsDir():
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil

	case mode&os.ModeSymlink != 0:
		linkTarget, err := readEntry(file)
		if err != nil {
			return fmt.Errorf("read symlink %s: %w", file.Name, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}
		os.Remove(target)
		if err := os.Symlink(string(linkTarget), target); err != nil {
			return fmt.Errorf("create symlink %s: %w", target, err)
		}
		return nil

	case mode.IsRegular():
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		source, err := file.Open()
		if err != nil {
			return fmt.Errorf("open entry %s: %w", file.Name, err)
		}
		defer source.Close()

		outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
		if err != nil {
			return fmt.Errorf("create file %s: %w", target, err)
		}

		if _, err := io.Copy(outFile, source); err != nil {
			outFile.Close()
			return fmt.Errorf("write file %s: %w", target, err)
		}

		return outFile.Close()

	default:
		// Skip other entry types (devices, fifos).
		return nil
	}
}

// readEntry returns the full contents of an archive entry.
func readEntry(file *zip.File) ([]byte, error) {
	source, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer source.Close()
	return io.ReadAll(source)
}

// ContentRoot locates the versioned directory holding the installable
// files among the workspace's immediate children. The upstream archive
// wraps its payload in a single "carbonyl-<version>" directory; a
// workspace without one means the archive layout changed, which is
// reported as a distinct extraction failure rather than guessed
// around.
func ContentRoot(workspaceDir string) (string, error) {
	entries, err := os.ReadDir(workspaceDir)
	if err != nil {
		return "", fmt.Errorf("%w: read workspace: %v", ErrExtraction, err)
	}

	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), config.ContentRootPrefix) {
			return filepath.Join(workspaceDir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("%w: no %s* directory in extracted archive (unexpected layout)",
		ErrExtraction, config.ContentRootPrefix)
}
