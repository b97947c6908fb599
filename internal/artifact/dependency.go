package artifact

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fidelitty/ftty-install/internal/config"
)

// ErrMissingDependency is returned when the exact pinned version of
// the dependency library is absent from the search directory.
var ErrMissingDependency = errors.New("missing dependency artifact")

// Dependency is the externally built, independently versioned shared
// library the installed tool links against.
type Dependency struct {
	Path      string
	Version   string
	SearchDir string
}

// VersionedName returns the fully versioned library filename,
// e.g. "libfidelitty.so.0.1.2".
func VersionedName(version string) string {
	return fmt.Sprintf("lib%s.so.%s", config.DependencyName, version)
}

// MajorName returns the ABI-major link name, e.g. "libfidelitty.so.0".
func MajorName(abiMajor string) string {
	return fmt.Sprintf("lib%s.so.%s", config.DependencyName, abiMajor)
}

// BareName returns the unversioned link name, e.g. "libfidelitty.so".
func BareName() string {
	return fmt.Sprintf("lib%s.so", config.DependencyName)
}

// ResolveDependency locates the exact pinned dependency version in the
// search directory. Only the fully versioned filename is accepted; a
// newer or older installed version does not satisfy the pin.
func ResolveDependency(searchDir, version string) (*Dependency, error) {
	path := filepath.Join(searchDir, VersionedName(version))

	if !fileExists(path) {
		return nil, fmt.Errorf("%w: %s not found in %s (install %s %s or set FTTY_LIB_DIR)",
			ErrMissingDependency, VersionedName(version), searchDir, config.DependencyName, version)
	}

	return &Dependency{
		Path:      path,
		Version:   version,
		SearchDir: searchDir,
	}, nil
}
