// Package release fetches and unpacks the upstream carbonyl release
// archive. The download and extraction mechanics sit behind small
// capability interfaces so the pipeline can run against fakes in
// tests; the real implementations use GitHub's release-asset URL
// scheme and the zip format the upstream project publishes.
package release

import (
	"errors"
	"fmt"

	"github.com/fidelitty/ftty-install/internal/config"
	"github.com/fidelitty/ftty-install/internal/platform"
)

// ErrDownload is the failure category for any error reported by the
// release-retrieval capability (network failure, missing release,
// missing asset). Never retried.
var ErrDownload = errors.New("download failed")

// ErrExtraction is the failure category for archive decompression
// errors and unrecognizable archive layouts.
var ErrExtraction = errors.New("extraction failed")

// Asset identifies one downloadable file attached to the pinned
// upstream release. It exists only for the duration of a fetch.
type Asset struct {
	Repo     string // "owner/name"
	Tag      string // release tag, e.g. "v0.0.3"
	Filename string // platform-specific archive name
}

// AssetName derives the upstream archive filename for a target using
// the fixed "carbonyl.<os>-<arch>.zip" pattern.
func AssetName(target *platform.Target) string {
	return fmt.Sprintf("carbonyl.%s.zip", target)
}

// NewAsset builds the asset reference for the pinned upstream release
// on the given target.
func NewAsset(target *platform.Target) Asset {
	return Asset{
		Repo:     config.UpstreamRepo,
		Tag:      config.UpstreamTag,
		Filename: AssetName(target),
	}
}

// DownloadURL returns the GitHub release-asset URL for the asset.
func (a Asset) DownloadURL() string {
	return fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", a.Repo, a.Tag, a.Filename)
}
