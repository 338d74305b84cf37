package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌─┐┬─┐┌┬┐╔═╗┬  ┌─┐┬ ┬
  ╠╣ │ │├┬┘│││╠╣ │  │ ││││
  ╚  └─┘┴└─┴ ┴╚  ┴─┘└─┘└┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "formflow",
		Short: "Headless multi-section form engine for Go",
		Long: `FormFlow is a headless multi-section form engine for Go.

One state machine tracks values, per-field errors, touched marks,
and section navigation, so terminals, web handlers, and tests all
see the same form. Features include:

  • Schema-driven sections, fields, and validation rules
  • Configurable validation timing (change, blur, submit)
  • Gated section navigation with completion tracking
  • Upload staging with temp-id claims
  • Prometheus metrics and OpenTelemetry spans`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the FormFlow ASCII art banner.
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

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
