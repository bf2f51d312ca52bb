package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-session-window/internal/core/window"
	"github.com/penwyp/go-session-window/internal/presentation/formatter"
	"github.com/penwyp/go-session-window/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Logging related
	debug bool

	// Output related
	outputFormat string

	// Profile storage
	profilesPath string

	// Window parameters
	gapFlag     string
	maxSpanFlag string
	graceFlag   string

	rootCmd = &cobra.Command{
		Use:   "go-session-window [flags]",
		Short: "Session window specification tool",
		Long: `go-session-window defines and validates session window specifications for stream-processing pipelines.

A session window groups time-stamped events separated by gaps of inactivity. This tool validates the
window parameters (inactivity gap, maximum session span, grace period) before they reach a windowing
engine, and manages named specification profiles.

Examples:
  go-session-window --gap 5ms                                  # Gap only: default max span, no grace
  go-session-window --gap 5ms --max-span 30s                   # Explicit max span
  go-session-window --gap 5ms --max-span 30s --grace 1s        # Fully specified
  go-session-window --gap 5ms --output json                    # JSON output
  go-session-window profile add dev --gap 5ms --max-span 30s   # Save a named profile
  go-session-window watch                                      # Revalidate profiles on file change`,
		RunE: runValidate,
	}
)

const defaultLogFile = "~/.go-session-window/logs/app.log"

func init() {
	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json)")

	// Profile storage
	rootCmd.PersistentFlags().StringVar(&profilesPath, "profiles", "",
		"Profile file path (default ~/.go-session-window/profiles.json)")

	// Window parameters
	rootCmd.Flags().StringVarP(&gapFlag, "gap", "g", "",
		"Inactivity gap between sessions (e.g., 5ms, 30s, 5m)")
	rootCmd.Flags().StringVar(&maxSpanFlag, "max-span", "",
		"Maximum total span of a merged session (default 10m)")
	rootCmd.Flags().StringVar(&graceFlag, "grace", "",
		"Grace period for late-arriving records after window end")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}

	if gapFlag == "" {
		return fmt.Errorf("--gap is required")
	}

	w, err := buildWindows(gapFlag, maxSpanFlag, graceFlag,
		cmd.Flags().Changed("max-span"), cmd.Flags().Changed("grace"))
	if err != nil {
		return err
	}

	util.LogDebugf("Validated specification: %s", w)
	return printWindows(cmd, w)
}

// buildWindows selects the factory matching the parameters the caller
// actually supplied and constructs the specification through it.
func buildWindows(gapStr, maxSpanStr, graceStr string, haveMaxSpan, haveGrace bool) (window.SessionWindows, error) {
	gap, err := parseDurationFlag("gap", gapStr)
	if err != nil {
		return window.SessionWindows{}, err
	}

	switch {
	case haveMaxSpan && haveGrace:
		maxSpan, err := parseDurationFlag("max-span", maxSpanStr)
		if err != nil {
			return window.SessionWindows{}, err
		}
		grace, err := parseDurationFlag("grace", graceStr)
		if err != nil {
			return window.SessionWindows{}, err
		}
		return window.OfInactivityGapMaxSpanAndGrace(gap, maxSpan, grace)

	case haveMaxSpan:
		maxSpan, err := parseDurationFlag("max-span", maxSpanStr)
		if err != nil {
			return window.SessionWindows{}, err
		}
		return window.OfInactivityGapAndMaxSpan(gap, maxSpan)

	case haveGrace:
		grace, err := parseDurationFlag("grace", graceStr)
		if err != nil {
			return window.SessionWindows{}, err
		}
		return window.OfInactivityGapAndGrace(gap, grace)

	default:
		return window.OfInactivityGapWithNoGrace(gap)
	}
}

func parseDurationFlag(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s value %q: %w", name, value, err)
	}
	return d, nil
}

func printWindows(cmd *cobra.Command, w window.SessionWindows) error {
	switch outputFormat {
	case "json":
		out, err := formatter.RenderWindowsJSON(w)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		fmt.Fprint(cmd.OutOrStdout(), formatter.RenderWindows(w))
	}
	return nil
}

func initLogging() error {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return util.InitLogger(logLevel, logFile, debug)
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
