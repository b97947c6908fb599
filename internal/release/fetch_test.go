package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testAsset() Asset {
	return Asset{
		Repo:     "fathyb/carbonyl",
		Tag:      "v0.0.3",
		Filename: "carbonyl.linux-amd64.zip",
	}
}

func TestFetchAsset(t *testing.T) {
	payload := []byte("fake archive bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/carbonyl.linux-amd64.zip" {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer server.Close()

	fetcher := NewGitHubFetcher()
	fetcher.baseURL = server.URL

	destDir := t.TempDir()
	path, err := fetcher.FetchAsset(context.Background(), testAsset(), destDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Dir(path) != destDir {
		t.Errorf("asset should land in destDir, got %s", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("downloaded bytes mismatch: got %q", got)
	}

	// The temp download file must not remain.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should be gone, stat err: %v", err)
	}
}

func TestFetchAssetMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewGitHubFetcher()
	fetcher.baseURL = server.URL

	destDir := t.TempDir()
	_, err := fetcher.FetchAsset(context.Background(), testAsset(), destDir)
	if err == nil {
		t.Fatal("expected error for missing asset")
	}

	// No partial files may be left behind.
	entries, readErr := os.ReadDir(destDir)
	if readErr != nil {
		t.Fatalf("read dest dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("dest dir should be empty after failed fetch, found %d entries", len(entries))
	}
}

func TestFetchAssetCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("never read"))
	}))
	defer server.Close()

	fetcher := NewGitHubFetcher()
	fetcher.baseURL = server.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fetcher.FetchAsset(ctx, testAsset(), t.TempDir()); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
