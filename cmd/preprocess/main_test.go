package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"housingprep/internal/dataprocessing"
	"housingprep/internal/services"
	"housingprep/pkg/contracts/domain"
)

func TestPrintSummary(t *testing.T) {
	tbl, err := domain.NewTable(domain.Column{Name: "a", Values: []domain.Value{domain.Number(1)}})
	require.NoError(t, err)

	result := &services.Result{
		Table: tbl,
		Report: &dataprocessing.RunReport{
			RunID:   "abc",
			RowsIn:  3,
			RowsOut: 1,
			Stages: []dataprocessing.StageReport{
				{Stage: dataprocessing.StageIDFilter, RowsIn: 3, RowsOut: 1},
				{Stage: dataprocessing.StageIDImpute, RowsIn: 1, RowsOut: 1, Imputations: []dataprocessing.Imputation{{Count: 2}}},
			},
		},
		OutputPath: "/tmp/out.csv",
	}

	var buf bytes.Buffer
	printSummary(&buf, result)
	out := buf.String()
	assert.Contains(t, out, "Quality pipeline abc: 3 rows in, 1 rows out, 1 columns")
	assert.Contains(t, out, "filter_negative")
	assert.Contains(t, out, "dropped=2")
	assert.Contains(t, out, "imputed=2")
	assert.Contains(t, out, "Written to /tmp/out.csv")

	result.OutputPath = ""
	buf.Reset()
	printSummary(&buf, result)
	assert.Contains(t, buf.String(), "Dry run")
}
