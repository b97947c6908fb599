package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host introspection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect resolves the running host into a Target. It prefers the
// kernel-reported architecture from gopsutil (the "x86_64"/"aarch64"
// spellings) and falls back to runtime.GOOS/GOARCH when host
// introspection fails. A cancelled context is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Target, error) {
	osName := runtime.GOOS
	archName := runtime.GOARCH

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		// Graceful fallback: the runtime values are enough to resolve
		// a target, host introspection only refines the spellings.
	} else {
		if info.OS != "" {
			osName = info.OS
		}
		if info.KernelArch != "" {
			archName = info.KernelArch
		}
	}

	target, err := Resolve(osName, archName)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	return target, nil
}
