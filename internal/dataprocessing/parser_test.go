package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

func TestLoadCSVTypes(t *testing.T) {
	tbl := csvTable(t,
		"longitude,total_bedrooms,ocean_proximity,flag,mixed",
		"-122.23,129,NEAR BAY,True,1",
		"-122.22,NA,INLAND,false,x",
		"-122.24,N/A,,TRUE,2",
		"-122.25,nan,NULL,,3",
	)

	assert.Equal(t, 4, tbl.NumRows())
	assert.Equal(t, domain.ColumnNumeric, column(t, tbl, "longitude").Type)
	assert.Equal(t, domain.ColumnNumeric, column(t, tbl, "total_bedrooms").Type)
	assert.Equal(t, 3, column(t, tbl, "total_bedrooms").MissingCount())
	assert.Equal(t, domain.ColumnText, column(t, tbl, "ocean_proximity").Type)
	assert.Equal(t, 2, column(t, tbl, "ocean_proximity").MissingCount())
	assert.Equal(t, domain.ColumnBool, column(t, tbl, "flag").Type)
	assert.Equal(t, []domain.Value{domain.Bool(true), domain.Bool(false), domain.Bool(true), domain.Missing()}, column(t, tbl, "flag").Values)

	mixed := column(t, tbl, "mixed")
	assert.Equal(t, domain.ColumnText, mixed.Type)
	assert.Equal(t, domain.Text("1"), mixed.Values[0], "numbers in a text column stay text")
}

func TestLoadCSVShape(t *testing.T) {
	t.Run("strips byte order mark", func(t *testing.T) {
		tbl, err := LoadCSV(strings.NewReader("\ufeffa,b\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())
	})

	t.Run("pads short rows", func(t *testing.T) {
		tbl, err := LoadCSV(strings.NewReader("a,b,c\n1,2\n4,5,6\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.Missing(), tbl.Row(0)[2])
		assert.Equal(t, domain.Number(6), tbl.Row(1)[2])
	})

	t.Run("rejects long rows", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("a,b\n1,2\n1,2,3\n"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader(""))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("rejects malformed quoting", func(t *testing.T) {
		_, err := LoadCSV(strings.NewReader("a,b\n\"1,2\n"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("names blank and duplicate headers", func(t *testing.T) {
		tbl, err := LoadCSV(strings.NewReader(",a,a,a\n0,1,2,3\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Unnamed: 0", "a", "a.1", "a.2"}, tbl.ColumnNames())
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := LoadCSV(strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.NumRows())
		assert.Equal(t, 2, tbl.NumCols())
	})

	t.Run("quoted geometry payload", func(t *testing.T) {
		tbl, err := LoadCSV(strings.NewReader("system:index,.geo\n0000,\"{\"\"coordinates\"\":[-122.23,37.88]}\"\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.Text(`{"coordinates":[-122.23,37.88]}`), column(t, tbl, ".geo").Values[0])
	})
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()

	t.Run("csv file", func(t *testing.T) {
		path := filepath.Join(dir, "housing.csv")
		require.NoError(t, os.WriteFile(path, []byte("total_rooms,households\n10,2\n"), 0644))

		tbl, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, []domain.Value{domain.Number(10), domain.Number(2)}, tbl.Row(0))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(filepath.Join(dir, "nope.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	})

	t.Run("xlsx file", func(t *testing.T) {
		path := filepath.Join(dir, "housing.xlsx")
		f := excelize.NewFile()
		sheet := f.GetSheetName(0)
		require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"total_rooms", "households", "ocean_proximity"}))
		require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{880, 126, "NEAR BAY"}))
		require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{7099.5, nil, "INLAND"}))
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		tbl, err := LoadTable(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"total_rooms", "households", "ocean_proximity"}, tbl.ColumnNames())
		assert.Equal(t, []float64{880, 7099.5}, column(t, tbl, "total_rooms").Floats())
		assert.Equal(t, 1, column(t, tbl, "households").MissingCount())
		assert.Equal(t, domain.Text("INLAND"), column(t, tbl, "ocean_proximity").Values[1])
	})

	t.Run("xlsx named sheet", func(t *testing.T) {
		path := filepath.Join(dir, "sheets.xlsx")
		f := excelize.NewFile()
		_, err := f.NewSheet("houses")
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("houses", "A1", &[]interface{}{"population"}))
		require.NoError(t, f.SetSheetRow("houses", "A2", &[]interface{}{322}))
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		tbl, err := LoadXLSX(path, "houses")
		require.NoError(t, err)
		assert.Equal(t, []float64{322}, column(t, tbl, "population").Floats())

		_, err = LoadXLSX(path, "missing")
		assert.Error(t, err)
	})
}
