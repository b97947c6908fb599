package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/config"
	"github.com/fidelitty/ftty-install/internal/platform"
	"github.com/fidelitty/ftty-install/internal/release"
)

// Manager orchestrates the resolution-and-composition pipeline:
// platform resolution, local artifact and dependency lookup, release
// fetch, extraction, composition, and symlink wiring. Execution is
// strictly sequential and fail-fast; the only guaranteed cleanup is
// the ephemeral workspace.
type Manager struct {
	cfg       *config.Config
	detector  platform.Detector
	fetcher   release.Fetcher
	extractor release.Extractor
	fs        FS
	log       config.Logger

	// newWorkspace is overridable in tests to observe the workspace
	// directory.
	newWorkspace func() (*release.Workspace, error)
}

// Options configures the manager. Zero-value collaborators are
// replaced with the production implementations.
type Options struct {
	Config    *config.Config
	Detector  platform.Detector
	Fetcher   release.Fetcher
	Extractor release.Extractor
	FS        FS
	Logger    config.Logger
}

// NewManager creates a pipeline manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	if opts.Detector == nil {
		opts.Detector = platform.NewDetector()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = release.NewGitHubFetcher()
	}
	if opts.Extractor == nil {
		opts.Extractor = release.NewZipExtractor()
	}
	if opts.FS == nil {
		opts.FS = NewOSFS()
	}
	if opts.Logger == nil {
		opts.Logger = config.NewNopLogger()
	}

	return &Manager{
		cfg:          opts.Config,
		detector:     opts.Detector,
		fetcher:      opts.Fetcher,
		extractor:    opts.Extractor,
		fs:           opts.FS,
		log:          opts.Logger,
		newWorkspace: release.NewWorkspace,
	}, nil
}

// Result describes a completed installation.
type Result struct {
	Target     *platform.Target
	Asset      release.Asset
	Variant    artifact.Variant
	InstallDir string
	BinLink    string
	Duration   time.Duration
}

// Run executes the full pipeline. Both local artifacts must resolve
// before any network activity; any failure aborts the run with one of
// the category errors. The workspace is removed on every exit path.
func (m *Manager) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	target, err := m.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}
	asset := release.NewAsset(target)
	m.log.Info("resolved release asset",
		"target", target.String(), "asset", asset.Filename, "tag", asset.Tag)

	local, err := artifact.LocateLocal(m.cfg.ProjectRoot, m.log)
	if err != nil {
		return nil, err
	}

	dep, err := artifact.ResolveDependency(m.cfg.LibDir, config.DependencyVersion)
	if err != nil {
		return nil, err
	}
	m.log.Debug("local artifacts resolved",
		"override", local.Path, "dependency", dep.Path)

	workspace, err := m.newWorkspace()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", release.ErrDownload, err)
	}
	defer workspace.Close()

	archivePath, err := m.fetcher.FetchAsset(ctx, asset, workspace.Dir())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", release.ErrDownload, err)
	}
	m.log.Info("release archive downloaded", "path", archivePath)

	if err := m.extractor.Extract(archivePath, workspace.Dir()); err != nil {
		return nil, fmt.Errorf("%w: %w", release.ErrExtraction, err)
	}

	contentRoot, err := release.ContentRoot(workspace.Dir())
	if err != nil {
		return nil, err
	}
	m.log.Debug("archive extracted", "contentRoot", contentRoot)

	composer := NewComposer(m.fs, m.cfg, m.log)
	if err := composer.Compose(contentRoot, local, dep); err != nil {
		return nil, err
	}

	if err := composer.LinkDependencyChain(dep); err != nil {
		return nil, err
	}

	if err := composer.LinkBinary(); err != nil {
		return nil, err
	}

	return &Result{
		Target:     target,
		Asset:      asset,
		Variant:    local.Variant,
		InstallDir: m.cfg.InstallDir,
		BinLink:    m.cfg.BinLink,
		Duration:   time.Since(startTime),
	}, nil
}

// Status is a read-only report of what a run would resolve and what is
// currently installed.
type Status struct {
	Target       *platform.Target
	AssetName    string
	LocalPath    string // empty when no local build exists
	Variant      artifact.Variant
	Dependency   string // empty when the pinned dependency is absent
	Installed    bool
	BinaryLinked bool
}

// Inspect resolves the platform and both local artifacts and checks
// the current installation state without mutating anything.
func (m *Manager) Inspect(ctx context.Context) (*Status, error) {
	target, err := m.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}

	status := &Status{
		Target:    target,
		AssetName: release.AssetName(target),
	}

	if local, err := artifact.LocateLocal(m.cfg.ProjectRoot, config.NewNopLogger()); err == nil {
		status.LocalPath = local.Path
		status.Variant = local.Variant
	}

	if dep, err := artifact.ResolveDependency(m.cfg.LibDir, config.DependencyVersion); err == nil {
		status.Dependency = dep.Path
	}

	status.Installed = m.isInstalled()
	status.BinaryLinked = m.isBinaryLinked()

	return status, nil
}

// isInstalled checks that the installed entry point exists and is
// executable.
func (m *Manager) isInstalled() bool {
	info, err := os.Stat(filepath.Join(m.cfg.InstallDir, config.BinaryName))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// isBinaryLinked checks that the PATH link resolves into the install
// dir's entry point.
func (m *Manager) isBinaryLinked() bool {
	target, err := os.Readlink(m.cfg.BinLink)
	if err != nil {
		return false
	}
	return target == filepath.Join(m.cfg.InstallDir, config.BinaryName)
}
