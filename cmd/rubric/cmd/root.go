// Package cmd implements the rubric command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logLevel string
	verbose  bool
)

// RootCmd is the base command; subcommands attach themselves in init.
var RootCmd = &cobra.Command{
	Use:   "rubric",
	Short: "Extract heading outlines from PDF documents",
	Long: `rubric reads the positioned text of PDF files, finds the lines that look
like section headings, and emits a document outline as JSON, Markdown,
or HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "minimum log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "shorthand for --log-level debug")
}

// newLogger builds a console logger honoring --log-level and -v. Logs go to
// stderr so piped output stays clean.
func newLogger() (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
