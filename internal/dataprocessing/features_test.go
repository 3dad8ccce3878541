package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFeaturesZeroDenominatorTakesMedian(t *testing.T) {
	in := csvTable(t,
		"total_rooms,total_bedrooms,population,households,median_income",
		"10,2,30,0,2",
		"20,4,40,4,3",
		"30,6,50,5,4",
		"40,8,60,4,5",
	)

	out, report, err := DeriveFeatures(in)
	require.NoError(t, err)

	// valid ratios 5, 6, 10; their median replaces the division by zero
	assert.Equal(t, []float64{6, 5, 6, 10}, column(t, out, FeatureRoomsPerHousehold).Floats())
	assert.Equal(t, []float64{1.2, 1, 1.2, 2}, column(t, out, FeatureBedroomsPerHousehold).Floats())
	assert.Equal(t, []float64{0.2, 0.2, 0.2, 0.2}, column(t, out, FeatureBedroomsPerRoom).Floats())
	assert.Equal(t, []float64{10, 10, 10, 15}, column(t, out, FeaturePopulationPerHousehold).Floats())
	assert.Equal(t, []float64{4, 9, 16, 25}, column(t, out, FeatureMedianIncomeSquared).Floats())

	assert.Equal(t, []string{
		FeatureRoomsPerHousehold,
		FeatureBedroomsPerHousehold,
		FeatureBedroomsPerRoom,
		FeaturePopulationPerHousehold,
		FeatureMedianIncomeSquared,
	}, report.ColumnsAdded)
	assert.Empty(t, report.Degenerate)
	assert.False(t, in.HasColumn(FeatureRoomsPerHousehold), "input must not change")
}

func TestDeriveFeaturesRatiosAreFinite(t *testing.T) {
	in := csvTable(t,
		"total_rooms,total_bedrooms,households",
		"0,0,0",
		"12,3,NA",
		"8,2,2",
		"NA,1,1",
		"6,0,3",
	)

	out, _, err := DeriveFeatures(in)
	require.NoError(t, err)

	for _, name := range []string{FeatureRoomsPerHousehold, FeatureBedroomsPerHousehold, FeatureBedroomsPerRoom} {
		col := column(t, out, name)
		assert.Zero(t, col.MissingCount(), name)
		for _, f := range col.Floats() {
			assert.False(t, math.IsInf(f, 0) || math.IsNaN(f), name)
		}
	}
}

func TestDeriveFeaturesDegenerateRatio(t *testing.T) {
	in := csvTable(t, "total_rooms,households", "1,0", "2,0")

	out, report, err := DeriveFeatures(in)
	require.NoError(t, err)
	assert.Equal(t, []string{FeatureRoomsPerHousehold}, report.Degenerate)
	assert.Equal(t, 2, column(t, out, FeatureRoomsPerHousehold).MissingCount())
}

func TestDeriveFeaturesSkipsAbsentSources(t *testing.T) {
	in := csvTable(t, "total_rooms,households", "10,2")

	out, report, err := DeriveFeatures(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"total_rooms", "households", FeatureRoomsPerHousehold}, out.ColumnNames())
	assert.Equal(t, []string{
		FeatureBedroomsPerHousehold,
		FeatureBedroomsPerRoom,
		FeaturePopulationPerHousehold,
		FeatureMedianIncomeSquared,
	}, report.FeaturesSkipped)
	assert.Equal(t, []string{"total_bedrooms", "population", "median_income"}, report.ColumnsSkipped)
}

func TestDeriveFeaturesSkipsNonNumericSource(t *testing.T) {
	in := csvTable(t, "total_rooms,households,total_bedrooms,population,median_income", "10,2,x,4,3")

	_, report, err := DeriveFeatures(in)
	require.NoError(t, err)
	assert.Equal(t, []string{FeatureBedroomsPerHousehold, FeatureBedroomsPerRoom}, report.FeaturesSkipped)
	assert.Equal(t, []string{"total_bedrooms"}, report.ColumnsSkipped)
}

func TestDeriveFeaturesReplacesExistingColumn(t *testing.T) {
	in := csvTable(t, "rooms_per_household,total_rooms,households", "99,10,2")

	out, _, err := DeriveFeatures(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"rooms_per_household", "total_rooms", "households"}, out.ColumnNames())
	assert.Equal(t, []float64{5}, column(t, out, FeatureRoomsPerHousehold).Floats())
}

func TestDeriveFeaturesIncomeSquaredKeepsMissing(t *testing.T) {
	in := csvTable(t, "median_income,x", "2,a", ",b")

	out, _, err := DeriveFeatures(in)
	require.NoError(t, err)
	col := column(t, out, FeatureMedianIncomeSquared)
	assert.Equal(t, []float64{4}, col.Floats())
	assert.Equal(t, 1, col.MissingCount())
}
