package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/fidelitty/ftty-install/internal/config"
	"github.com/fidelitty/ftty-install/internal/installer"
)

// runStatus handles the `ftty-install status` subcommand. It resolves
// everything a run would resolve but never mutates the filesystem.
func runStatus(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	manager, err := installer.NewManager(installer.Options{Config: cfg})
	if err != nil {
		return err
	}

	status, err := manager.Inspect(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("platform:   %s\n", status.Target)
	fmt.Printf("asset:      %s (%s)\n", status.AssetName, config.UpstreamTag)

	if status.LocalPath != "" {
		fmt.Printf("local lib:  %s (%s)\n", status.LocalPath, status.Variant)
	} else {
		color.New(color.FgYellow).Printf("local lib:  not built (expected under %s/target)\n", cfg.ProjectRoot)
	}

	if status.Dependency != "" {
		fmt.Printf("dependency: %s\n", status.Dependency)
	} else {
		color.New(color.FgYellow).Printf("dependency: lib%s.so.%s not found in %s\n",
			config.DependencyName, config.DependencyVersion, cfg.LibDir)
	}

	fmt.Printf("installed:  %v (%s)\n", status.Installed, cfg.InstallDir)
	fmt.Printf("on PATH:    %v (%s)\n", status.BinaryLinked, cfg.BinLink)

	return nil
}
