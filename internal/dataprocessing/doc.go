// Package dataprocessing implements the core of the consolidation
// pipeline: parsing source spreadsheets into raw tables, cleaning them into
// long-format price records, orchestrating the per-file load/clean loop
// with per-file failure isolation, and summarizing the consolidated result.
//
// Processing is strictly sequential and single-threaded. Each file is
// opened, read fully, and closed before the next one is touched; no state
// is shared across files, so a failure on one file can never corrupt or
// block another.
package dataprocessing
