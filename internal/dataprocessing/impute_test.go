package dataprocessing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

func TestImputeNulls(t *testing.T) {
	in := csvTable(t,
		"total_bedrooms,ocean_proximity,households",
		"1,NEAR BAY,5",
		",INLAND,6",
		"3,,7",
		"4,NEAR BAY,8",
		",INLAND,9",
	)

	out, report, err := ImputeNulls(in, false)
	require.NoError(t, err)

	assert.Equal(t, numbers(1, 3, 3, 4, 3), column(t, out, "total_bedrooms").Values)
	assert.Equal(t, domain.Text("INLAND"), column(t, out, "ocean_proximity").Values[2], "tie resolves to smallest value")
	assert.Empty(t, out.ColumnsWithMissing())

	assert.Equal(t, []string{"total_bedrooms", "ocean_proximity"}, report.ColumnsUsed)
	require.Len(t, report.Imputations, 2)
	assert.Equal(t, Imputation{Column: "total_bedrooms", Strategy: StrategyMedian, Value: domain.Number(3), Count: 2}, report.Imputations[0])
	assert.Equal(t, Imputation{Column: "ocean_proximity", Strategy: StrategyMode, Value: domain.Text("INLAND"), Count: 1}, report.Imputations[1])
	assert.Equal(t, 3, report.ValuesImputed())

	assert.Equal(t, 2, column(t, in, "total_bedrooms").MissingCount(), "input must not change")
}

func TestImputeNullsEvenMedian(t *testing.T) {
	in := csvTable(t, "v", "1", "NA", "2", "4", "10")

	out, _, err := ImputeNulls(in, false)
	require.NoError(t, err)
	assert.Equal(t, numbers(1, 3, 2, 4, 10), column(t, out, "v").Values)
}

func TestImputeNullsBoolColumn(t *testing.T) {
	in := csvTable(t, "flag", "True", "NA", "False", "True")

	out, report, err := ImputeNulls(in, false)
	require.NoError(t, err)
	assert.Equal(t, domain.Bool(true), column(t, out, "flag").Values[1])
	assert.Equal(t, StrategyMode, report.Imputations[0].Strategy)
}

func TestImputeNullsPassThrough(t *testing.T) {
	in := csvTable(t, "a,b", "1,x", "2,y")

	out, report, err := ImputeNulls(in, false)
	require.NoError(t, err)
	assert.Equal(t, in.ColumnNames(), out.ColumnNames())
	assert.Equal(t, in.Row(1), out.Row(1))
	assert.Empty(t, report.Imputations)
	assert.Empty(t, report.ColumnsUsed)
}

func TestImputeNullsDegenerateColumn(t *testing.T) {
	in := csvTable(t, "a,empty", "1,", "2,")

	_, _, err := ImputeNulls(in, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDegenerateColumn))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDegenerateColumn))
	assert.Contains(t, err.Error(), "empty")

	out, report, err := ImputeNulls(in, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"empty"}, report.Degenerate)
	assert.Equal(t, 2, column(t, out, "empty").MissingCount())
}

func TestImputeNullsIsIdempotent(t *testing.T) {
	in := csvTable(t, "a,b", "1,x", ",y", "5,")

	once, _, err := ImputeNulls(in, false)
	require.NoError(t, err)
	twice, report, err := ImputeNulls(once, false)
	require.NoError(t, err)

	assert.Empty(t, report.Imputations)
	for i := 0; i < once.NumRows(); i++ {
		assert.Equal(t, once.Row(i), twice.Row(i))
	}
}
