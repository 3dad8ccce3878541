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
	in := flag.String("in", "", "input CSV or XLSX (defaults to data/raw/housing.csv relative to executable)")
	out := flag.String("out", "", "output CSV (defaults to data/processed/housing_processed.csv)")
	dryRun := flag.Bool("dry-run", false, "run the pipeline without writing output")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString("preprocess"))
		return
	}

	application, err := app.NewApplication("preprocess")
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if *in == "" {
		*in = application.Paths.RawHousingCSV
	}
	if *out == "" {
		*out = application.Paths.ProcessedHousingCSV
	}
	if *dryRun {
		*out = ""
	}

	err = application.Run(func(ctx context.Context) error {
		result, err := application.Service.Preprocess(ctx, *in, *out)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, result)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "preprocess failed: %v\n", err)
		os.Exit(1)
	}
}

// printSummary writes a short human-readable report of the run
func printSummary(w io.Writer, result *services.Result) {
	r := result.Report
	fmt.Fprintf(w, "Quality pipeline %s: %d rows in, %d rows out, %d columns\n",
		r.RunID, r.RowsIn, r.RowsOut, result.Table.NumCols())
	for _, s := range r.Stages {
		fmt.Fprintf(w, "  %-20s dropped=%d imputed=%d added=%d\n",
			s.Stage, s.RowsDropped(), s.ValuesImputed(), len(s.ColumnsAdded))
	}
	if result.OutputPath != "" {
		fmt.Fprintf(w, "Written to %s\n", result.OutputPath)
	} else {
		fmt.Fprintln(w, "Dry run, nothing written")
	}
}
