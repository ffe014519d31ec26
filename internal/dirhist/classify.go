package dirhist

import "strings"

// NoExtension is reported for names without a usable extension.
const NoExtension = "no_extension"

// ExtensionOf returns the suffix of name starting at its last dot, dot included.
// Names without a dot, or ending in one, yield NoExtension.
// Only the last suffix counts, so "archive.tar.gz" yields ".gz".
func ExtensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx == -1 || idx == len(name)-1 {
		return NoExtension
	}

	return name[idx:]
}

// Classify returns the label of the first bucket that accepts size.
// A bucket accepts size if it is the sentinel or its threshold is strictly
// greater than size, so a file of exactly Threshold bytes lands in the next bucket.
// An empty table yields the empty string.
func (t Table) Classify(size int64) string {
	for _, b := range t {
		if b.Sentinel() || size < b.Threshold {
			return b.Label
		}
	}

	return ""
}
