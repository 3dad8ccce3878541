package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"housingprep/internal/config"
	"housingprep/internal/dataprocessing"
	"housingprep/internal/services"
)

func TestOverrideRequest(t *testing.T) {
	defaults := services.RunAllRequestFrom(config.NewPaths("/base"))

	req := overrideRequest(defaults, "", "", "", "")
	assert.Equal(t, defaults, req)

	req = overrideRequest(defaults, "raw.csv", "", "urban.csv", "")
	assert.Equal(t, "raw.csv", req.RawInput)
	assert.Equal(t, defaults.ProcessedOutput, req.ProcessedOutput)
	assert.Equal(t, "urban.csv", req.UrbanizedInput)
	assert.Equal(t, defaults.FinalOutput, req.FinalOutput)
}

func TestPrintSummary(t *testing.T) {
	result := &services.RunAllResult{
		Quality: &services.Result{
			Report:     &dataprocessing.RunReport{RowsIn: 10, RowsOut: 8},
			OutputPath: "processed.csv",
		},
		Geometry: &services.Result{
			Report:     &dataprocessing.RunReport{RowsOut: 5},
			OutputPath: "final.csv",
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, result)
	assert.Contains(t, buf.String(), "Quality:  10 rows in, 8 rows out -> processed.csv")
	assert.Contains(t, buf.String(), "Geometry: 5 rows, 0 parse failures -> final.csv")
}
