package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"housingprep/internal/app"
	"housingprep/internal/services"
	"housingprep/pkg/contracts"
)

func main() {
	raw := flag.String("raw", "", "raw housing CSV (defaults to data/raw/housing.csv)")
	processed := flag.String("processed", "", "quality pipeline output (defaults to data/processed/housing_processed.csv)")
	urbanized := flag.String("urbanized", "", "urbanized status CSV (defaults to data/intermediate/houses_with_urbanized_status.csv)")
	final := flag.String("final", "", "geometry pipeline output (defaults to data/processed/housing_final.csv)")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString("prepall"))
		return
	}

	application, err := app.NewApplication("prepall")
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	req := overrideRequest(application.Service.DefaultRequest(), *raw, *processed, *urbanized, *final)

	err = application.Run(func(ctx context.Context) error {
		result, err := application.Service.RunAll(ctx, req)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, result)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "prepall failed: %v\n", err)
		os.Exit(1)
	}
}

// overrideRequest replaces the default paths with any non-empty flag
func overrideRequest(req services.RunAllRequest, raw, processed, urbanized, final string) services.RunAllRequest {
	if raw != "" {
		req.RawInput = raw
	}
	if processed != "" {
		req.ProcessedOutput = processed
	}
	if urbanized != "" {
		req.UrbanizedInput = urbanized
	}
	if final != "" {
		req.FinalOutput = final
	}
	return req
}

// printSummary writes a short human-readable report of both runs
func printSummary(w io.Writer, result *services.RunAllResult) {
	q, g := result.Quality.Report, result.Geometry.Report
	fmt.Fprintf(w, "Quality:  %d rows in, %d rows out -> %s\n", q.RowsIn, q.RowsOut, result.Quality.OutputPath)
	fmt.Fprintf(w, "Geometry: %d rows, %d parse failures -> %s\n", g.RowsOut, g.ParseFailures(), result.Geometry.OutputPath)
}
