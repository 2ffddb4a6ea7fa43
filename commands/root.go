package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-sticky-scroll/internal/config"
	"github.com/penwyp/go-sticky-scroll/internal/util"
)

var (
	// Logging related
	debug     bool
	logFile   string
	logFormat string

	// Option overrides
	optionsFile string
	setPairs    []string

	rootCmd = &cobra.Command{
		Use:   "go-sticky-scroll",
		Short: "Scroll-driven scene timeline simulator",
		Long: `go-sticky-scroll maps a scroll position onto a timeline of named scenes and
drives the timeline playback head, with optional snapping and scene focus.

Scenario files describe a document, its layout, options and a timed input
script. They can be simulated on virtual time, inspected, or played in the
terminal.

Examples:
  go-sticky-scroll simulate intro.yaml                  # Print the event trace
  go-sticky-scroll simulate intro.yaml -o summary       # Print a summary of the run
  go-sticky-scroll simulate intro.yaml --kinds seek     # Only timeline seeks
  go-sticky-scroll inspect intro.yaml -o json           # Scene table and snap points
  go-sticky-scroll play intro.yaml --watch              # Scroll with the keyboard, reload on save
  go-sticky-scroll simulate intro.yaml --set snapDelay=300 --set snapEasing=linear`,
		SilenceUsage:      true,
		PersistentPreRunE: initRuntime,
	}
)

const defaultLogFile = "~/.go-sticky-scroll/logs/app.log"

func init() {
	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile,
		"Log file path (empty logs to stderr)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(util.FormatText),
		"Log format (text, json)")

	// Option overrides
	rootCmd.PersistentFlags().StringVar(&optionsFile, "options", "",
		"JSON or YAML file replacing the default options")
	rootCmd.PersistentFlags().StringArrayVar(&setPairs, "set", nil,
		"Override one default option (key=value, repeatable)")
}

// initRuntime sets up logging and the global option defaults before any
// subcommand runs
func initRuntime(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}
	return applyDefaults()
}

func initLogging() error {
	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	format := util.LogFormat(logFormat)
	if format != util.FormatText && format != util.FormatJSON {
		return fmt.Errorf("invalid log format '%s': must be either 'text' or 'json'", logFormat)
	}

	if logFile == "" {
		util.InitLogger(util.NewLogger(logLevel, util.NewConsoleOutput(os.Stderr, format)))
		return nil
	}

	path := expandPath(logFile)
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	output, err := util.NewFileOutput(path, format)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	util.InitLogger(util.NewLogger(logLevel, output))
	return nil
}

// applyDefaults installs --options and --set as the global defaults every
// controller starts from
func applyDefaults() error {
	if optionsFile == "" && len(setPairs) == 0 {
		return nil
	}

	opts := config.Defaults()
	if optionsFile != "" {
		loaded, err := config.LoadFile(expandPath(optionsFile), opts)
		if err != nil {
			return err
		}
		opts = loaded
	}
	if err := opts.ApplyPairs(setPairs); err != nil {
		return err
	}

	if err := config.ReplaceDefaults(opts); err != nil {
		return err
	}
	util.LogDebug("Default options replaced",
		util.F("file", optionsFile),
		util.F("overrides", len(setPairs)))
	return nil
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
