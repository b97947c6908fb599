package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/config"
	"github.com/fidelitty/ftty-install/internal/installer"
)

// cliOptions are the flag overrides shared by the install and status
// subcommands. Flag > environment > default.
type cliOptions struct {
	projectRoot string
	libDir      string
	verbose     bool
}

// parseFlags handles the small shared flag set by hand.
func parseFlags(args []string) (*cliOptions, error) {
	opts := &cliOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--verbose", "-v":
			opts.verbose = true
		case "--project-root":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--project-root requires a directory argument")
			}
			opts.projectRoot = args[i]
		case "--lib-dir":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("--lib-dir requires a directory argument")
			}
			opts.libDir = args[i]
		default:
			return nil, fmt.Errorf("unknown option: %s\nRun 'ftty-install --help' for usage", args[i])
		}
	}

	return opts, nil
}

// loadConfig builds the pipeline configuration from defaults, config
// file, environment, and finally the CLI flags.
func loadConfig(opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.projectRoot != "" {
		cfg.ProjectRoot = opts.projectRoot
	}
	if opts.libDir != "" {
		cfg.LibDir = opts.libDir
	}

	return cfg, nil
}

// newLogger builds the CLI's structured logger.
func newLogger(verbose bool) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zapCfg.Build()
}

// runInstall handles the default `ftty-install` action.
func runInstall(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	zapLogger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer zapLogger.Sync()

	manager, err := installer.NewManager(installer.Options{
		Config: cfg,
		Logger: config.NewZapLogger(zapLogger),
	})
	if err != nil {
		return err
	}

	result, err := manager.Run(context.Background())
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Printf("✓ carbonyl installed\n")
	fmt.Printf("  asset:    %s (%s)\n", result.Asset.Filename, result.Asset.Tag)
	fmt.Printf("  variant:  %s\n", result.Variant)
	fmt.Printf("  location: %s\n", result.InstallDir)
	fmt.Printf("  on PATH:  %s\n", result.BinLink)
	fmt.Printf("  took:     %s\n", result.Duration.Round(time.Millisecond))

	if result.Variant == artifact.VariantDebug {
		yellow := color.New(color.FgYellow)
		yellow.Println("  note: installed a debug build of libcarbonyl.so")
	}

	return nil
}
