// Package files discovers price spreadsheet files laid out by the
// data_root/<province>/<city>/<year>.xlsx convention.
//
// Discovery is read-only and deterministic: results are sorted
// lexicographically by path, so two walks over unchanged input return the
// same sequence. City and year filters narrow the walk; a city outside the
// target set is skipped silently because the filter is a deliberate
// narrowing, not an error condition.
package files
