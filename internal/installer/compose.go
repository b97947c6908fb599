package installer

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/config"
)

// ErrInstallation is the failure category for any filesystem mutation
// in the compose or link steps. There is no rollback: a failure
// partway can leave the previous installation removed, which the
// staged rename below narrows to the smallest possible window.
var ErrInstallation = errors.New("installation failed")

// Composer builds the installation directory from the extracted
// upstream tree plus the two local overrides.
type Composer struct {
	fs  FS
	cfg *config.Config
	log config.Logger
}

// NewComposer creates a composer operating through the given
// filesystem capability.
func NewComposer(fsys FS, cfg *config.Config, logger config.Logger) *Composer {
	if logger == nil {
		logger = config.NewNopLogger()
	}
	return &Composer{fs: fsys, cfg: cfg, log: logger}
}

// stagingDir is the sibling directory the new tree is assembled in
// before being renamed over the install dir. A sibling (not a temp
// dir) keeps the final rename on one filesystem.
func (c *Composer) stagingDir() string {
	return c.cfg.InstallDir + ".staging"
}

// Compose assembles the installation: the full upstream content tree,
// the local libcarbonyl.so override, and the pinned dependency file
// under its exact versioned name. The tree is staged next to the
// install dir and swapped into place last, so an existing installation
// disappears only for the instant between RemoveAll and Rename.
func (c *Composer) Compose(contentRoot string, local *artifact.Local, dep *artifact.Dependency) error {
	staging := c.stagingDir()

	if err := c.fs.RemoveAll(staging); err != nil {
		return fmt.Errorf("%w: clear staging dir: %w", ErrInstallation, err)
	}

	if err := c.fs.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("%w: create staging dir: %w", ErrInstallation, err)
	}

	c.log.Debug("copying upstream tree", "from", contentRoot, "to", staging)
	if err := c.fs.CopyTree(contentRoot, staging); err != nil {
		return fmt.Errorf("%w: copy upstream tree: %w", ErrInstallation, err)
	}

	// The local build always wins over the upstream copy, whichever
	// variant was selected.
	mainLib := filepath.Join(staging, config.MainLibraryName)
	if err := c.fs.CopyFile(local.Path, mainLib, 0755); err != nil {
		return fmt.Errorf("%w: install %s: %w", ErrInstallation, config.MainLibraryName, err)
	}

	depFile := filepath.Join(staging, artifact.VersionedName(dep.Version))
	if err := c.fs.CopyFile(dep.Path, depFile, 0755); err != nil {
		return fmt.Errorf("%w: install %s: %w", ErrInstallation, artifact.VersionedName(dep.Version), err)
	}

	if err := c.fs.RemoveAll(c.cfg.InstallDir); err != nil {
		return fmt.Errorf("%w: remove previous installation: %w", ErrInstallation, err)
	}

	if err := c.fs.Rename(staging, c.cfg.InstallDir); err != nil {
		return fmt.Errorf("%w: move installation into place: %w", ErrInstallation, err)
	}

	c.log.Info("installation composed",
		"dir", c.cfg.InstallDir,
		"variant", string(local.Variant))
	return nil
}
