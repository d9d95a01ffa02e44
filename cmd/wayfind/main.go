package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	werrors "github.com/wayfind-dev/wayfind/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┬ ┬┌─┐┬┌┐┌┌┬┐
  ║║║├─┤└┬┘├┤ ││││ ││
  ╚╩╝┴ ┴ ┴ └  ┴┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "wayfind",
		Short: "Declarative client-side routing for Go",
		Long: `Wayfind is a declarative router core: path patterns, a route tree,
a declaration-order matcher, and an in-memory history stack.

The CLI works on route manifests (TOML or JSON):

  • check    validate a manifest's patterns
  • routes   print the compiled route tree
  • match    probe a path against a manifest
  • serve    run the inspection server over a manifest`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		checkCmd(),
		routesCmd(),
		matchCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		werrors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the Wayfind ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
