package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/fidelitty/ftty-install/internal/artifact"
	"github.com/fidelitty/ftty-install/internal/installer"
	"github.com/fidelitty/ftty-install/internal/platform"
	"github.com/fidelitty/ftty-install/internal/release"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0-dev"

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "--version":
			fmt.Printf("ftty-install %s\n", Version)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		case "status":
			if err := runStatus(args[1:]); err != nil {
				fail(err)
			}
			return
		case "install":
			args = args[1:]
		}
	}

	// Default action: install.
	if err := runInstall(args); err != nil {
		fail(err)
	}
}

// fail prints a single diagnostic line for the failure category and
// terminates with a non-zero status.
func fail(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(os.Stderr, "%s: ", category(err))
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// category maps an error to its failure-category label.
func category(err error) string {
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		return "unsupported platform"
	case errors.Is(err, artifact.ErrMissingLocalArtifact):
		return "missing local artifact"
	case errors.Is(err, artifact.ErrMissingDependency):
		return "missing dependency artifact"
	case errors.Is(err, release.ErrDownload):
		return "download failure"
	case errors.Is(err, release.ErrExtraction):
		return "extraction failure"
	case errors.Is(err, installer.ErrInstallation):
		return "installation failure"
	default:
		return "error"
	}
}

func printHelp() {
	fmt.Println("ftty-install - compose a local carbonyl installation")
	fmt.Println()
	fmt.Println("Downloads the pinned upstream carbonyl release, overlays the")
	fmt.Println("locally built libcarbonyl.so and the pinned libfidelitty, and")
	fmt.Println("links the result onto the PATH.")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ftty-install [install] [options]   Compose the installation (default)")
	fmt.Println("  ftty-install status [options]      Report what a run would resolve")
	fmt.Println("  ftty-install --version              Show version information")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --project-root <dir>  Where to look for the local build (default: .)")
	fmt.Println("  --lib-dir <dir>       Dependency search directory (or FTTY_LIB_DIR)")
	fmt.Println("  --verbose, -v         Enable debug logging")
	fmt.Println()
	fmt.Println("Most installations need elevated rights for /opt and /usr/local/bin.")
}
