package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metercore/mcore/pkg/pathsub"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	chdirPath string
)

var pathSubstitutor *pathsub.Substitutor

var rootCmd = &cobra.Command{
	Use:   "mctl",
	Short: "Inspect and exercise the metering SDK core",
	Long: `mctl is the command-line companion of the metering SDK core. It parses
and formats MDL constants, runs the wire codecs (BCD, RAD40, hex, Base64,
numeric byte strings), authenticates and encrypts with AES-EAX, matches
regular expressions, inspects XML documents, and lists the reflected
class registry.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if chdirPath != "" {
			pathSubstitutor = pathsub.New(chdirPath)
			if !pathSubstitutor.Succeeded() {
				printError("cannot change directory to %s\n", chdirPath)
			}
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if pathSubstitutor != nil {
			pathSubstitutor.Restore()
			pathSubstitutor = nil
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().
		StringVar(&chdirPath, "chdir", "", "Run with the given working directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// checkArgs validates that the correct number of arguments were provided
func checkArgs(args []string, expected int, usage string) error {
	if len(args) != expected {
		return fmt.Errorf("expected %d argument(s), got %d\nUsage: %s", expected, len(args), usage)
	}
	return nil
}
