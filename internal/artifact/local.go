// Package artifact locates the two locally provided shared libraries
// the installer layers on top of the upstream release: the project's
// own libcarbonyl.so build and the pinned libfidelitty dependency.
//
// Both must resolve before any network activity; the pipeline treats a
// miss from either as fatal.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fidelitty/ftty-install/internal/config"
)

// Variant tags which build of the local override was selected.
type Variant string

const (
	// VariantRelease is the optimized build under target/release.
	VariantRelease Variant = "release"
	// VariantDebug is the unoptimized build under target/debug.
	// Selecting it is allowed but reported as a warning.
	VariantDebug Variant = "debug"
)

// ErrMissingLocalArtifact is returned when neither the release nor the
// debug build of the local override exists.
var ErrMissingLocalArtifact = errors.New("missing local artifact")

// Local is the locally built shared library that overrides the
// upstream copy of libcarbonyl.so.
type Local struct {
	Path    string
	Variant Variant
}

// LocateLocal finds the best available local override under the
// project root, preferring the release build over the debug build.
// The debug selection is non-fatal but logged as a warning. When
// neither build exists the run must abort before any download.
func LocateLocal(projectRoot string, logger config.Logger) (*Local, error) {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	candidates := []Local{
		{Path: filepath.Join(projectRoot, "target", "release", config.MainLibraryName), Variant: VariantRelease},
		{Path: filepath.Join(projectRoot, "target", "debug", config.MainLibraryName), Variant: VariantDebug},
	}

	for _, candidate := range candidates {
		if !fileExists(candidate.Path) {
			continue
		}
		if candidate.Variant == VariantDebug {
			logger.Warn("using debug build of "+config.MainLibraryName,
				"path", candidate.Path,
				"hint", "run a release build for production installs")
		}
		local := candidate
		return &local, nil
	}

	return nil, fmt.Errorf("%w: no %s under %s (build the project first: target/release or target/debug)",
		ErrMissingLocalArtifact, config.MainLibraryName, projectRoot)
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
