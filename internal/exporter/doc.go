// Package exporter writes the consolidated price table to its output
// formats, CSV and Excel, with identical columns and value rendering in
// both so the formats stay interchangeable.
package exporter
