// Package services wires the loader, the pipelines and the CSV writer into
// file-to-file entry points.
//
// PreprocessingService exposes one method per pipeline:
//
//	svc := services.NewPreprocessingService(cfg, paths, logger, providers)
//	result, err := svc.Preprocess(ctx, paths.RawHousingCSV, paths.ProcessedHousingCSV)
//	result, err = svc.Wrangle(ctx, paths.UrbanizedStatusCSV, paths.FinalHousingCSV)
//
// An empty output path returns the processed table without writing it.
// RunAll runs both pipelines concurrently.
package services
