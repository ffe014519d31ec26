package dirhist

import (
	"cmp"
	"io/fs"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// BucketCount is the number of files that fell into one size bucket.
type BucketCount struct {
	// Label is the bucket label.
	Label string `json:"label" yaml:"label"`
	// Count is the number of files in the bucket.
	Count int64 `json:"count" yaml:"count"`
}

// ExtensionCount is the number of files sharing one extension.
type ExtensionCount struct {
	// Extension includes the leading dot, or is NoExtension.
	Extension string `json:"extension" yaml:"extension"`
	// Count is the number of files with this extension.
	Count int64 `json:"count" yaml:"count"`
}

// Stats holds aggregate statistics for a directory walk.
type Stats struct {
	// FileCount is the number of regular files visited, including those whose size could not be read.
	FileCount int64 `json:"file_count" yaml:"file_count"`
	// TotalBytes is the cumulative size of all classified files.
	TotalBytes int64 `json:"total_bytes" yaml:"total_bytes"`
	// Histogram holds one entry per bucket, in table order.
	Histogram []BucketCount `json:"histogram" yaml:"histogram"`
	// Extensions maps every observed extension to its file count.
	Extensions map[string]int64 `json:"extensions" yaml:"extensions"`
	// TopExtensions contains the TopN most common extensions, most common first.
	TopExtensions []ExtensionCount `json:"top_extensions" yaml:"top_extensions"`
	// ErrorCount is the number of files whose size could not be read.
	ErrorCount int64 `json:"error_count" yaml:"error_count"`
	// SkippedLinks is the number of symbolic links that were skipped.
	SkippedLinks int64 `json:"skipped_links" yaml:"skipped_links"`
	// Elapsed is the total time taken for analysis.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	// TopN is the number of extensions ranked.
	TopN int `json:"top_n" yaml:"top_n"`
}

// Options configures directory analysis and CLI behavior.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Buckets is the size bucket table (nil = DefaultTable).
	Buckets Table
	// TopN is the number of extensions to rank.
	TopN int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives diagnostics (nil = discard).
	Logger *slog.Logger
	// Stat queries the size of a file (nil = the walked entry's own Info).
	Stat func(path string) (fs.FileInfo, error)
	// Debug indicates whether debug output is enabled.
	Debug bool
	// NoColor disables colored table headers.
	NoColor bool
	// Output represents output format (table, json or yaml).
	Output string
	// Version indicates whether to show version and exit.
	Version bool
}

// collector accumulates the statistics of a single run.
// It is not safe for concurrent use; the walk invokes it from one goroutine at a time.
type collector struct {
	buckets      Table
	sizes        map[string]int64
	extensions   map[string]int64
	fileCount    int64
	totalBytes   int64
	errorCount   int64
	skippedLinks int64
}

// newCollector creates a collector with every bucket label preset to zero.
func newCollector(buckets Table) *collector {
	sizes := make(map[string]int64, len(buckets))
	for _, label := range buckets.Labels() {
		sizes[label] = 0
	}

	return &collector{
		buckets:    buckets,
		sizes:      sizes,
		extensions: make(map[string]int64),
	}
}

// addFile counts a regular file before its size is queried.
func (c *collector) addFile() {
	c.fileCount++
}

// addError counts a file whose size could not be queried.
func (c *collector) addError() {
	c.errorCount++
}

// addLink counts a skipped symbolic link.
func (c *collector) addLink() {
	c.skippedLinks++
}

// recordSize increments the count of the bucket with the given label.
func (c *collector) recordSize(label string) {
	c.sizes[label]++
}

// recordExtension increments the count of ext, creating it on first use.
func (c *collector) recordExtension(ext string) {
	c.extensions[ext]++
}

// add classifies a file of the given name and size.
func (c *collector) add(name string, size int64) {
	c.totalBytes += size
	c.recordSize(c.buckets.Classify(size))
	c.recordExtension(ExtensionOf(name))
}

// finalize produces the final Stats from the collected data.
func (c *collector) finalize(topN int) *Stats {
	histogram := make([]BucketCount, 0, len(c.buckets))
	for _, label := range c.buckets.Labels() {
		histogram = append(histogram, BucketCount{Label: label, Count: c.sizes[label]})
	}

	return &Stats{
		FileCount:     c.fileCount,
		TotalBytes:    c.totalBytes,
		Histogram:     histogram,
		Extensions:    maps.Clone(c.extensions),
		TopExtensions: RankExtensions(c.extensions, topN),
		ErrorCount:    c.errorCount,
		SkippedLinks:  c.skippedLinks,
		TopN:          topN,
	}
}

// RankExtensions sorts extensions by descending count and returns the first n.
// Equal counts are ordered by extension so the ranking is deterministic.
// A non-positive n returns every extension.
func RankExtensions(counts map[string]int64, n int) []ExtensionCount {
	ranked := make([]ExtensionCount, 0, len(counts))
	for ext, count := range counts {
		ranked = append(ranked, ExtensionCount{Extension: ext, Count: count})
	}

	slices.SortStableFunc(ranked, func(a, b ExtensionCount) int {
		if byCount := cmp.Compare(b.Count, a.Count); byCount != 0 {
			return byCount
		}

		return cmp.Compare(a.Extension, b.Extension)
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// HistogramTotal returns the sum of all bucket counts.
func (s *Stats) HistogramTotal() int64 {
	var total int64
	for _, b := range s.Histogram {
		total += b.Count
	}

	return total
}
