// Package platform resolves the host operating system and CPU
// architecture into the canonical target identity used to name
// upstream carbonyl release assets.
//
// Resolution is a pure mapping over the raw OS and architecture
// strings; detection of those raw strings from the running host uses
// gopsutil with a runtime-package fallback when host introspection
// fails.
package platform

import (
	"context"
	"errors"
)

// Canonical operating system names as they appear in asset filenames.
const (
	OSLinux = "linux"
	OSMacOS = "macos"
)

// Canonical architecture names as they appear in asset filenames.
const (
	ArchAMD64 = "amd64"
	ArchARM64 = "arm64"
)

// ErrUnsupported is returned when the host OS or CPU architecture is
// outside the supported set. The wrapping error carries the raw
// unrecognized value.
var ErrUnsupported = errors.New("unsupported platform")

// Target identifies the platform an upstream release asset is built
// for. Immutable once resolved; derived once per run.
type Target struct {
	OS   string // "linux" or "macos"
	Arch string // "amd64" or "arm64"
}

// String returns the "<os>-<arch>" form used in asset filenames.
func (t Target) String() string {
	return t.OS + "-" + t.Arch
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Target, error)
}
