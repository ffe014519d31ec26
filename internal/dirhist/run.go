package dirhist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// DefaultTopN is the default number of ranked extensions.
const DefaultTopN = 10

// ErrNotDirectory is returned when the scan root is not a directory.
var ErrNotDirectory = errors.New("not a valid directory")

// progress throttles calls to a progress hook.
type progress struct {
	hook     func(files, bytes int64)
	interval time.Duration
	last     time.Time
}

// tick invokes the hook if the interval has elapsed since the previous call.
//
//nolint:varnamelen // c is idiomatic for collector
func (p *progress) tick(c *collector) {
	if p.hook == nil {
		return
	}

	if now := time.Now(); now.Sub(p.last) >= p.interval {
		p.last = now
		p.hook(c.fileCount, c.totalBytes)
	}
}

// validateRoot checks that path exists and is a directory.
func validateRoot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("accessing path %q: %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("directory %q: %w", path, ErrNotDirectory)
	}

	return nil
}

// Run performs directory analysis and returns aggregated statistics.
// It walks the directory tree at opt.Path without following symbolic links,
// and classifies every regular file by size bucket and by extension.
//
// Symbolic links are skipped silently. Files whose size cannot be read are
// counted in FileCount and ErrorCount, logged as warnings and otherwise skipped.
//
// The walk operation can be cancelled via ctx. Progress updates are sent
// to progressHook if provided, from the walking goroutine.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Stats, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	if err := validateRoot(opt.Path); err != nil {
		return nil, err
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	if len(opt.Buckets) == 0 {
		opt.Buckets = DefaultTable
	}

	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = DefaultProgressInterval
	}

	for _, b := range opt.Buckets {
		if b.Sentinel() {
			log.DebugContext(ctx, "bucket", "label", b.Label, "below", "unbounded")

			continue
		}

		log.DebugContext(ctx, "bucket", "label", b.Label, "below", humanize.IBytes(uint64(b.Threshold))) //nolint:gosec // Thresholds are positive
	}

	collector := newCollector(opt.Buckets)
	prog := &progress{hook: progressHook, interval: opt.ProgressInterval}

	start := time.Now()

	// A single worker keeps the callback serial; the collector has no lock.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.DebugContext(ctx, "error accessing path", "path", path, "error", err)

			return nil // Silently skip errors
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.Type()&fs.ModeSymlink != 0 {
			collector.addLink()
			log.DebugContext(ctx, "skipping symlink", "path", path)

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		collector.addFile()

		info, err := statEntry(opt.Stat, path, d)
		if err != nil {
			collector.addError()
			log.WarnContext(ctx, "skipping file", "path", path, "error", err)

			return nil
		}

		collector.add(d.Name(), info.Size())
		prog.tick(collector)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %q: %w", opt.Path, walkErr)
	}

	stats := collector.finalize(opt.TopN)

	stats.Elapsed = time.Since(start)

	log.DebugContext(ctx, "scan complete",
		"files", stats.FileCount,
		"errors", stats.ErrorCount,
		"links", stats.SkippedLinks,
		"elapsed", stats.Elapsed,
	)

	return stats, nil
}

// statEntry queries the size of a walked file, using stat if provided.
//
//nolint:varnamelen // d is standard for DirEntry
func statEntry(stat func(string) (fs.FileInfo, error), path string, d fs.DirEntry) (fs.FileInfo, error) {
	if stat != nil {
		return stat(path)
	}

	return d.Info()
}
