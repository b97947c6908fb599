package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/config"
	"github.com/fidelitty/ftty-install/internal/testutil"
)

// setupCompose builds an extracted content root, a local override, and
// a resolved dependency inside an isolated layout.
func setupCompose(t *testing.T) (*config.Config, string, *artifact.Local, *artifact.Dependency) {
	t.Helper()

	layout := testutil.SetupEnv(t)

	contentRoot := filepath.Join(t.TempDir(), "carbonyl-0.0.3")
	testutil.WriteFile(t, filepath.Join(contentRoot, "carbonyl"), []byte("upstream binary"), 0o755)
	testutil.WriteFile(t, filepath.Join(contentRoot, "libcarbonyl.so"), []byte("upstream library"), 0o755)
	testutil.WriteFile(t, filepath.Join(contentRoot, "icudtl.dat"), []byte("icu data"), 0o644)
	testutil.WriteFile(t, filepath.Join(contentRoot, "locales", "en-US.pak"), []byte("locale"), 0o644)

	localPath := filepath.Join(layout.ProjectRoot, "target", "release", "libcarbonyl.so")
	testutil.WriteFile(t, localPath, []byte("local build"), 0o755)
	local := &artifact.Local{Path: localPath, Variant: artifact.VariantRelease}

	depPath := filepath.Join(layout.LibDir, "libfidelitty.so.0.1.2")
	testutil.WriteFile(t, depPath, []byte("fidelitty"), 0o755)
	dep := &artifact.Dependency{Path: depPath, Version: "0.1.2", SearchDir: layout.LibDir}

	cfg := &config.Config{
		InstallDir:  layout.InstallDir,
		BinLink:     layout.BinLink(),
		ProjectRoot: layout.ProjectRoot,
		LibDir:      layout.LibDir,
	}

	return cfg, contentRoot, local, dep
}

func TestCompose(t *testing.T) {
	cfg, contentRoot, local, dep := setupCompose(t)

	composer := NewComposer(NewOSFS(), cfg, nil)
	if err := composer.Compose(contentRoot, local, dep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Full upstream tree present.
	for _, name := range []string{"carbonyl", "icudtl.dat", filepath.Join("locales", "en-US.pak")} {
		if _, err := os.Stat(filepath.Join(cfg.InstallDir, name)); err != nil {
			t.Errorf("upstream file %s missing: %v", name, err)
		}
	}

	// The main library is the local build, not upstream's.
	got, err := os.ReadFile(filepath.Join(cfg.InstallDir, "libcarbonyl.so"))
	if err != nil {
		t.Fatalf("read installed library: %v", err)
	}
	if string(got) != "local build" {
		t.Errorf("installed library should be the local build, got %q", got)
	}

	// The dependency sits under its exact versioned name.
	if _, err := os.Stat(filepath.Join(cfg.InstallDir, "libfidelitty.so.0.1.2")); err != nil {
		t.Errorf("dependency file missing: %v", err)
	}

	// The staging directory does not survive.
	if _, err := os.Stat(cfg.InstallDir + ".staging"); !os.IsNotExist(err) {
		t.Errorf("staging dir should be gone, stat err: %v", err)
	}
}

func TestComposeReplacesExistingInstallation(t *testing.T) {
	cfg, contentRoot, local, dep := setupCompose(t)

	// Simulate a previous installation with a file the new release no
	// longer ships.
	testutil.WriteFile(t, filepath.Join(cfg.InstallDir, "stale.dat"), []byte("old"), 0o644)

	composer := NewComposer(NewOSFS(), cfg, nil)
	if err := composer.Compose(contentRoot, local, dep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.InstallDir, "stale.dat")); !os.IsNotExist(err) {
		t.Errorf("previous installation should be discarded entirely, stat err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.InstallDir, "carbonyl")); err != nil {
		t.Errorf("new installation incomplete: %v", err)
	}
}

func TestComposePreservesSubdirectoryModes(t *testing.T) {
	cfg, contentRoot, local, dep := setupCompose(t)

	composer := NewComposer(NewOSFS(), cfg, nil)
	if err := composer.Compose(contentRoot, local, dep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(filepath.Join(cfg.InstallDir, "carbonyl"))
	if err != nil {
		t.Fatalf("stat installed binary: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("installed binary should stay executable, mode %v", info.Mode())
	}
}
