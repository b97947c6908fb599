package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "ftty-install/1.0"
)

// Fetcher is the release-retrieval capability: download exactly one
// asset of the pinned release into destDir and return its path, or
// report an error. The pipeline propagates a Fetcher error verbatim
// as a DownloadFailure; it never retries.
type Fetcher interface {
	FetchAsset(ctx context.Context, asset Asset, destDir string) (string, error)
}

// GitHubFetcher downloads release assets over HTTPS from GitHub.
type GitHubFetcher struct {
	client    *http.Client
	baseURL   string // overrides the GitHub URL scheme when non-empty (tests)
	userAgent string
}

// NewGitHubFetcher creates a fetcher for GitHub release assets.
func NewGitHubFetcher() *GitHubFetcher {
	return &GitHubFetcher{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Allow up to 10 redirects; GitHub serves assets from a
				// redirected CDN URL.
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
	}
}

// FetchAsset downloads the asset into destDir in a single attempt and
// returns the downloaded file path.
func (f *GitHubFetcher) FetchAsset(ctx context.Context, asset Asset, destDir string) (string, error) {
	url := asset.DownloadURL()
	if f.baseURL != "" {
		url = f.baseURL + "/" + asset.Filename
	}

	destPath := filepath.Join(destDir, asset.Filename)
	if err := f.downloadToFile(ctx, url, destPath); err != nil {
		return "", fmt.Errorf("fetch %s %s asset %s: %w", asset.Repo, asset.Tag, asset.Filename, err)
	}

	return destPath, nil
}

// downloadToFile streams a URL into destPath through a temp file so a
// truncated transfer never leaves a partial file under the final name.
func (f *GitHubFetcher) downloadToFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
