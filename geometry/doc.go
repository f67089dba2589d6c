// Package geometry implements the pure layout math of the grid.
//
// All values are in abstract units; the grid package uses terminal cells for
// widths and terminal lines for heights. Every function is deterministic and
// tolerant of out-of-range input: indices are clamped and negative sizes are
// treated as zero instead of panicking.
package geometry
