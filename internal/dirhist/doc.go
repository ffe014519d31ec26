// Package dirhist provides directory size and extension statistics.
//
// It walks directory trees using fastwalk without following symbolic links,
// classifies every regular file into a size bucket and by its extension,
// and returns the aggregated counts as a Stats snapshot.
package dirhist
