// Command dynparse is a small CLI for exercising the dynparse library: it
// builds one of a few sample grammars in-process and runs it against an
// input, either printing the recognized match tree or benchmarking
// concurrent parses of the same grammar.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logFormat string

func main() {
	rootCmd := &cobra.Command{
		Use:   "dynparse",
		Short: "Build and run sample dynparse grammars",
	}
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "diagnostic log format: text or json")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		configureLogging(logFormat)
	}

	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureLogging(format string) {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
