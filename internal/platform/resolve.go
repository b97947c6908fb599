package platform

import (
	"fmt"
	"strings"
)

// Resolve maps raw host OS and architecture strings to a Target.
// OS names are matched case-insensitively ("Linux", "Darwin").
// Architectures accept both the uname spellings ("x86_64", "aarch64")
// and the Go runtime spellings ("amd64", "arm64"). Any other value
// fails with ErrUnsupported carrying the raw string.
func Resolve(osName, archName string) (*Target, error) {
	os, err := resolveOS(osName)
	if err != nil {
		return nil, err
	}

	arch, err := resolveArch(archName)
	if err != nil {
		return nil, err
	}

	return &Target{OS: os, Arch: arch}, nil
}

func resolveOS(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return OSLinux, nil
	case "darwin", "macos":
		return OSMacOS, nil
	default:
		return "", fmt.Errorf("%w: operating system %q", ErrUnsupported, name)
	}
}

func resolveArch(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "amd64", "x86_64":
		return ArchAMD64, nil
	case "arm64", "aarch64":
		return ArchARM64, nil
	default:
		return "", fmt.Errorf("%w: architecture %q", ErrUnsupported, name)
	}
}
