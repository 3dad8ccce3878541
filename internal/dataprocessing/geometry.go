package dataprocessing

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

// maxFailureSamples caps the per-row failures kept in a report
const maxFailureSamples = 100

// ParseFailure is a geometry payload that could not be decoded
type ParseFailure struct {
	Row    int
	Reason string
}

type pointPayload struct {
	Coordinates []*float64 `json:"coordinates"`
}

// ParsePoint decodes a {"coordinates":[lon, lat]} payload
func ParsePoint(payload string) (lon, lat float64, err error) {
	var p pointPayload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return 0, 0, fmt.Errorf("invalid json: %w", err)
	}
	if p.Coordinates == nil {
		return 0, 0, errors.New("coordinates field missing")
	}
	if len(p.Coordinates) != 2 {
		return 0, 0, fmt.Errorf("expected 2 coordinates, got %d", len(p.Coordinates))
	}
	if p.Coordinates[0] == nil || p.Coordinates[1] == nil {
		return 0, 0, errors.New("null coordinate")
	}
	return *p.Coordinates[0], *p.Coordinates[1], nil
}

// RoundTo rounds x to the given number of decimal places. Exact halves round
// to even, so -122.125 becomes -122.12.
func RoundTo(x float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.RoundToEven(x*scale) / scale
}

// ExtractCoordinates decodes the geometry column into longitude and latitude
// columns, then drops the geometry column and the index column if present.
// A row whose payload cannot be decoded gets missing coordinates and is
// counted as a parse failure; it never aborts the stage. A table without the
// geometry column fails with a MissingColumn error.
func ExtractCoordinates(t *domain.Table, opts GeometryOptions) (*domain.Table, StageReport, error) {
	report := StageReport{Stage: StageIDGeometry, RowsIn: t.NumRows(), RowsOut: t.NumRows()}

	geo, ok := t.Column(opts.Column)
	if !ok {
		return nil, report, apperrors.NewMissingColumnError(opts.Column)
	}
	report.ColumnsUsed = []string{opts.Column}

	lons := make([]domain.Value, t.NumRows())
	lats := make([]domain.Value, t.NumRows())
	for i, v := range geo.Values {
		if v.IsMissing() {
			report.addFailure(i, "missing geometry")
			continue
		}
		lon, lat, err := ParsePoint(v.String())
		if err != nil {
			report.addFailure(i, err.Error())
			continue
		}
		lons[i] = domain.Number(RoundTo(lon, opts.Precision))
		lats[i] = domain.Number(RoundTo(lat, opts.Precision))
	}

	out, err := t.WithColumn(domain.Column{Name: opts.LongitudeColumn, Type: domain.ColumnNumeric, Values: lons})
	if err != nil {
		return nil, report, err
	}
	if out, err = out.WithColumn(domain.Column{Name: opts.LatitudeColumn, Type: domain.ColumnNumeric, Values: lats}); err != nil {
		return nil, report, err
	}
	report.ColumnsAdded = []string{opts.LongitudeColumn, opts.LatitudeColumn}

	dropped := []string{opts.Column}
	if opts.IndexColumn != "" && t.HasColumn(opts.IndexColumn) {
		dropped = append(dropped, opts.IndexColumn)
	}
	report.ColumnsDropped = dropped
	return out.Drop(dropped...), report, nil
}

func (r *StageReport) addFailure(row int, reason string) {
	r.ParseFailures++
	if len(r.FailureSamples) < maxFailureSamples {
		r.FailureSamples = append(r.FailureSamples, ParseFailure{Row: row, Reason: reason})
	}
}
