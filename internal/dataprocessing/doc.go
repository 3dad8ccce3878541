// Package dataprocessing cleans and enriches the housing tables.
// It covers the whole path from a CSV or XLSX file to a model-ready table.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Loader: reads CSV or XLSX input into a domain.Table with typed columns
// 2. Stages: pure table transformations that return a StageReport
// 3. Pipeline: runs stages in order with logging, tracing and metrics
// 4. Options: quality and geometry settings mapped from config
//
// # Usage
//
// Running the quality pipeline:
//
//	table, err := dataprocessing.LoadTable("data/raw/housing.csv")
//	if err != nil {
//	    return err
//	}
//	pipeline, err := dataprocessing.NewQualityPipeline(dataprocessing.DefaultQualityOptions(), logger, providers)
//	if err != nil {
//	    return err
//	}
//	out, report, err := pipeline.Run(ctx, table)
//
// Stages can also be called directly:
//
//	filtered, report := dataprocessing.FilterNegative(table, columns, false)
//
// # Data Flow
//
//	Quality:  CSV → Loader → FilterNegative → ImputeNulls → EncodeOneHot → DeriveFeatures
//	Geometry: CSV → Loader → ExtractCoordinates
//
// # Error Handling
//
// Unreadable or malformed input is fatal. Absent optional columns are not
// errors; stages skip them and list them in their report. A geometry payload
// that cannot be decoded only affects its own row.
package dataprocessing
