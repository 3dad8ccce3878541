package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"housingprep/pkg/contracts/domain"
)

// csvTable loads an inline CSV fixture
func csvTable(t *testing.T, lines ...string) *domain.Table {
	t.Helper()
	tbl, err := LoadCSV(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *domain.Table, name string) *domain.Column {
	t.Helper()
	col, ok := tbl.Column(name)
	require.True(t, ok, "column %s not found in %v", name, tbl.ColumnNames())
	return col
}

func numbers(values ...float64) []domain.Value {
	out := make([]domain.Value, len(values))
	for i, v := range values {
		out[i] = domain.Number(v)
	}
	return out
}
