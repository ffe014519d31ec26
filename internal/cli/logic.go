package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/idelchi/dirhist/internal/dirhist"
)

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// newLogger returns a text logger on w, at debug level if requested.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func logic(cmd *cobra.Command, options dirhist.Options) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	enableProgress := strings.ToLower(options.Output) == "table" &&
		!options.Debug &&
		isTerminal(stderr)

	options.Logger = newLogger(stderr, options.Debug)

	// Progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	stats, err := dirhist.Run(cmd.Context(), options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch strings.ToLower(options.Output) {
	case "json":
		return PrintJSON(stats, stdout)
	case "yaml":
		return PrintYAML(stats, stdout)
	case "table":
		return PrintTable(stats, stdout, !options.NoColor && isTerminal(stdout))
	default:
		return fmt.Errorf("unknown output format: %s", options.Output)
	}
}
