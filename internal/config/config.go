// Package config holds the pinned release constants and the explicit
// configuration structure passed through the installation pipeline.
// Nothing outside this package reads the environment or a config file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Pinned upstream release identity. The installer composes exactly
// this release; there is no version negotiation.
const (
	// UpstreamRepo is the GitHub "owner/name" of the upstream project.
	UpstreamRepo = "fathyb/carbonyl"
	// UpstreamTag is the release tag the prebuilt archive is fetched from.
	UpstreamTag = "v0.0.3"
	// ContentRootPrefix names the single versioned directory expected
	// at the top of the extracted archive (e.g. "carbonyl-0.0.3").
	ContentRootPrefix = "carbonyl-"
)

// Pinned dependency identity. The fidelitty renderer is built and
// versioned independently of both this repo and upstream.
const (
	// DependencyName is the shared-library base name ("fidelitty" in
	// "libfidelitty.so").
	DependencyName = "fidelitty"
	// DependencyVersion is the exact required version. No fuzzy or
	// latest-version matching: the fully versioned file must exist.
	DependencyVersion = "0.1.2"
	// DependencyABIMajor is the ABI major number used for the
	// intermediate symlink in the library's link chain.
	DependencyABIMajor = "0"
)

// MainLibraryName is the shared library inside the upstream archive
// that the locally built artifact always replaces.
const MainLibraryName = "libcarbonyl.so"

// BinaryName is the entry-point executable inside the installation.
const BinaryName = "carbonyl"

// Default filesystem locations. All of them are overridable through
// Config; these are only the values Load seeds.
const (
	DefaultInstallDir = "/opt/carbonyl"
	DefaultBinLink    = "/usr/local/bin/carbonyl"
	DefaultLibDir     = "/usr/local/lib"
)

// Config carries every path the pipeline touches. It is populated once
// in main and passed down; the pipeline itself never consults the
// environment.
type Config struct {
	// InstallDir is the directory the composed installation lives in.
	// Fully owned by the installer: discarded and rebuilt each run.
	InstallDir string `mapstructure:"install_dir"`
	// BinLink is the PATH-visible symlink to the installed binary.
	BinLink string `mapstructure:"bin_link"`
	// ProjectRoot is where the locally built libcarbonyl.so override
	// is searched for (target/release, then target/debug).
	ProjectRoot string `mapstructure:"project_root"`
	// LibDir is the dependency search directory. Overridable with the
	// FTTY_LIB_DIR environment variable.
	LibDir string `mapstructure:"lib_dir"`
}

// Load builds a Config from defaults, an optional ftty-install.yaml in
// the working directory, and FTTY_-prefixed environment variables
// (highest precedence among the three).
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("install_dir", DefaultInstallDir)
	v.SetDefault("bin_link", DefaultBinLink)
	v.SetDefault("project_root", ".")
	v.SetDefault("lib_dir", DefaultLibDir)

	v.SetConfigName("ftty-install")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FTTY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// No config file is the normal case; defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations that would make the pipeline operate
// on empty paths.
func (c *Config) Validate() error {
	if c.InstallDir == "" {
		return fmt.Errorf("install_dir cannot be empty")
	}
	if c.BinLink == "" {
		return fmt.Errorf("bin_link cannot be empty")
	}
	if c.ProjectRoot == "" {
		return fmt.Errorf("project_root cannot be empty")
	}
	if c.LibDir == "" {
		return fmt.Errorf("lib_dir cannot be empty")
	}
	return nil
}
