// Package exporter writes housing tables to CSV.
//
// CSVWriter writes a header row followed by one record per table row.
// Numbers are written in their shortest exact form, booleans as 1/0 or
// True/False, and missing cells as empty fields. A UTF-8 BOM can be
// prepended for Excel.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	err := writer.WriteTable(paths.ProcessedHousingCSV, table, exporter.DefaultWriteOptions())
package exporter
