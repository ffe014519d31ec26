package dirhist_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/dirhist/internal/dirhist"
)

// writeFiles creates files of the given sizes under root.
func writeFiles(t *testing.T, root string, files map[string]int) {
	t.Helper()

	for name, size := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o644))
	}
}

func histogram(stats *dirhist.Stats) map[string]int64 {
	counts := make(map[string]int64, len(stats.Histogram))
	for _, b := range stats.Histogram {
		counts[b.Label] = b.Count
	}

	return counts
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"a.txt":         500,
		"nested/b.txt":  2048,
		"nested/deep/c": 1_000_000,
	})

	stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.FileCount)
	assert.Zero(t, stats.ErrorCount)

	counts := histogram(stats)
	assert.Equal(t, int64(1), counts["<1kB"])
	assert.Equal(t, int64(1), counts["<10kB"])
	assert.Equal(t, int64(1), counts["<1mB"])
	assert.Equal(t, int64(3), stats.HistogramTotal())

	assert.Equal(t, []dirhist.ExtensionCount{
		{Extension: ".txt", Count: 2},
		{Extension: dirhist.NoExtension, Count: 1},
	}, stats.TopExtensions)
	assert.Equal(t, dirhist.DefaultTopN, stats.TopN)
}

func TestRun_HistogramInTableOrder(t *testing.T) {
	t.Parallel()

	stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: t.TempDir()}, nil)
	require.NoError(t, err)

	assert.Equal(t, dirhist.DefaultTable.Labels(), func() []string {
		labels := make([]string, 0, len(stats.Histogram))
		for _, b := range stats.Histogram {
			labels = append(labels, b.Label)
		}

		return labels
	}())
	assert.Zero(t, stats.FileCount)
}

func TestRun_SkipsSymlinks(t *testing.T) {
	t.Parallel()

	target := t.TempDir()
	writeFiles(t, target, map[string]int{"real.txt": 10})

	root := t.TempDir()
	if err := os.Symlink(filepath.Join(target, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, os.Symlink(target, filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: root}, nil)
	require.NoError(t, err)

	assert.Zero(t, stats.FileCount)
	assert.Zero(t, stats.HistogramTotal())
	assert.Empty(t, stats.Extensions)
	assert.Empty(t, stats.TopExtensions)
	assert.Equal(t, int64(3), stats.SkippedLinks)
}

func TestRun_StatFailureIsSkipped(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"good.txt":   10,
		"broken.log": 10,
	})

	var logs bytes.Buffer

	opt := dirhist.Options{
		Path:   root,
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
		Stat: func(path string) (fs.FileInfo, error) {
			if strings.HasSuffix(path, "broken.log") {
				return nil, fs.ErrPermission
			}

			return os.Lstat(path)
		},
	}

	stats, err := dirhist.Run(context.Background(), opt, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.FileCount)
	assert.Equal(t, int64(1), stats.ErrorCount)
	assert.Equal(t, stats.FileCount-stats.ErrorCount, stats.HistogramTotal())
	assert.Equal(t, map[string]int64{".txt": 1}, stats.Extensions)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "broken.log")
	assert.Equal(t, 1, strings.Count(logs.String(), "\n"))
}

func TestRun_InvalidRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{"file.txt": 1})

	t.Run("regular file", func(t *testing.T) {
		t.Parallel()

		stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: filepath.Join(root, "file.txt")}, nil)
		require.ErrorIs(t, err, dirhist.ErrNotDirectory)
		assert.Nil(t, stats)
	})

	t.Run("nonexistent", func(t *testing.T) {
		t.Parallel()

		stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: filepath.Join(root, "nope")}, nil)
		require.ErrorIs(t, err, fs.ErrNotExist)
		assert.Nil(t, stats)
	})
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"a.go":       100,
		"b.go":       20_000,
		"c/d.md":     300_000,
		"c/e/f.tar":  5,
		"c/e/g.json": 2_000_000,
	})

	first, err := dirhist.Run(context.Background(), dirhist.Options{Path: root}, nil)
	require.NoError(t, err)

	second, err := dirhist.Run(context.Background(), dirhist.Options{Path: root}, nil)
	require.NoError(t, err)

	assert.Equal(t, first.FileCount, second.FileCount)
	assert.Equal(t, first.Histogram, second.Histogram)
	assert.Equal(t, first.Extensions, second.Extensions)
	assert.Equal(t, first.TopExtensions, second.TopExtensions)
}

func TestRun_TopN(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{
		"1.a": 1, "2.a": 1, "3.a": 1,
		"1.b": 1, "2.b": 1,
		"1.c": 1,
	})

	stats, err := dirhist.Run(context.Background(), dirhist.Options{Path: root, TopN: 2}, nil)
	require.NoError(t, err)

	assert.Equal(t, []dirhist.ExtensionCount{
		{Extension: ".a", Count: 3},
		{Extension: ".b", Count: 2},
	}, stats.TopExtensions)
	assert.Len(t, stats.Extensions, 3)
}

func TestRun_ProgressHook(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{"a.txt": 7})

	var calls int

	var lastFiles, lastBytes int64

	_, err := dirhist.Run(context.Background(), dirhist.Options{Path: root}, func(files, bytes int64) {
		calls++
		lastFiles, lastBytes = files, bytes
	})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(1), lastFiles)
	assert.Equal(t, int64(7), lastBytes)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]int{"a.txt": 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dirhist.Run(ctx, dirhist.Options{Path: root}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
