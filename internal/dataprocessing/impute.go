package dataprocessing

import (
	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

// Imputation strategies
const (
	StrategyMedian = "median"
	StrategyMode   = "mode"
)

// Imputation records how one column was filled
type Imputation struct {
	Column   string
	Strategy string
	Value    domain.Value
	Count    int
}

// ImputeNulls fills every missing cell. Numeric columns take the median of
// their present values; other columns take the most frequent value, ties
// going to the smallest in sort order. A column with no present value fails
// with a DegenerateColumn error unless allowDegenerate is set, in which case
// it is left as is and listed in the report.
func ImputeNulls(t *domain.Table, allowDegenerate bool) (*domain.Table, StageReport, error) {
	report := StageReport{Stage: StageIDImpute, RowsIn: t.NumRows(), RowsOut: t.NumRows()}

	withMissing := t.ColumnsWithMissing()
	if len(withMissing) == 0 {
		return t, report, nil
	}
	report.ColumnsUsed = withMissing

	out := t
	for _, name := range withMissing {
		col, _ := out.Column(name)

		var fill domain.Value
		var strategy string
		var ok bool
		if col.IsNumeric() {
			var m float64
			m, ok = median(col.Floats())
			fill, strategy = domain.Number(m), StrategyMedian
		} else {
			fill, ok = mode(col.Values)
			strategy = StrategyMode
		}

		if !ok {
			if !allowDegenerate {
				return nil, report, apperrors.NewDegenerateColumnError(name)
			}
			report.Degenerate = append(report.Degenerate, name)
			continue
		}

		values := make([]domain.Value, len(col.Values))
		count := 0
		for i, v := range col.Values {
			if v.IsMissing() {
				values[i] = fill
				count++
				continue
			}
			values[i] = v
		}

		var err error
		out, err = out.WithColumn(domain.Column{Name: name, Type: col.Type, Values: values})
		if err != nil {
			return nil, report, err
		}
		report.Imputations = append(report.Imputations, Imputation{
			Column:   name,
			Strategy: strategy,
			Value:    fill,
			Count:    count,
		})
	}

	return out, report, nil
}
