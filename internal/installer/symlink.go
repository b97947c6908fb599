package installer

import (
	"fmt"
	"path/filepath"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/config"
)

// LinkDependencyChain establishes the dependency's conventional link
// chain inside the installation directory:
//
//	libfidelitty.so    -> libfidelitty.so.<abiMajor>
//	libfidelitty.so.<abiMajor> -> libfidelitty.so.<version>
//
// Targets are relative so the chain survives the installation
// directory being moved. Existing links are replaced.
func (c *Composer) LinkDependencyChain(dep *artifact.Dependency) error {
	versioned := artifact.VersionedName(dep.Version)
	major := artifact.MajorName(config.DependencyABIMajor)
	bare := artifact.BareName()

	majorLink := filepath.Join(c.cfg.InstallDir, major)
	if err := c.fs.Symlink(versioned, majorLink); err != nil {
		return fmt.Errorf("%w: link %s: %w", ErrInstallation, major, err)
	}

	bareLink := filepath.Join(c.cfg.InstallDir, bare)
	if err := c.fs.Symlink(major, bareLink); err != nil {
		return fmt.Errorf("%w: link %s: %w", ErrInstallation, bare, err)
	}

	c.log.Debug("dependency symlink chain created",
		"bare", bareLink, "major", majorLink, "file", versioned)
	return nil
}

// LinkBinary creates or replaces the PATH-visible entry point pointing
// at the installed binary.
func (c *Composer) LinkBinary() error {
	binary := filepath.Join(c.cfg.InstallDir, config.BinaryName)

	if err := c.fs.Symlink(binary, c.cfg.BinLink); err != nil {
		return fmt.Errorf("%w: link %s: %w", ErrInstallation, c.cfg.BinLink, err)
	}

	c.log.Info("binary linked", "link", c.cfg.BinLink, "target", binary)
	return nil
}
