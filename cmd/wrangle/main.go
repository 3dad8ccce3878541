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
	in := flag.String("in", "", "input CSV with a .geo column (defaults to data/intermediate/houses_with_urbanized_status.csv)")
	out := flag.String("out", "", "output CSV (defaults to data/processed/housing_final.csv)")
	dryRun := flag.Bool("dry-run", false, "run the pipeline without writing output")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString("wrangle"))
		return
	}

	application, err := app.NewApplication("wrangle")
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if *in == "" {
		*in = application.Paths.UrbanizedStatusCSV
	}
	if *out == "" {
		*out = application.Paths.FinalHousingCSV
	}
	if *dryRun {
		*out = ""
	}

	err = application.Run(func(ctx context.Context) error {
		result, err := application.Service.Wrangle(ctx, *in, *out)
		if err != nil {
			return err
		}
		printSummary(os.Stdout, result)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "wrangle failed: %v\n", err)
		os.Exit(1)
	}
}

// printSummary writes a short human-readable report of the run
func printSummary(w io.Writer, result *services.Result) {
	r := result.Report
	fmt.Fprintf(w, "Geometry pipeline %s: %d rows, %d geometry parse failures\n",
		r.RunID, r.RowsOut, r.ParseFailures())
	if result.OutputPath != "" {
		fmt.Fprintf(w, "Written to %s\n", result.OutputPath)
	} else {
		fmt.Fprintln(w, "Dry run, nothing written")
	}
}
