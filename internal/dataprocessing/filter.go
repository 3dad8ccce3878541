package dataprocessing

import (
	"housingprep/pkg/contracts/domain"
)

// FilterNegative removes rows holding a negative value in any of columns.
// Columns absent from the table, or not declared numeric, are skipped and
// listed in the report. Missing cells are kept unless dropMissing is set.
func FilterNegative(t *domain.Table, columns []string, dropMissing bool) (*domain.Table, StageReport) {
	report := StageReport{Stage: StageIDFilter, RowsIn: t.NumRows()}

	var checked []*domain.Column
	for _, name := range columns {
		col, ok := t.Column(name)
		if !ok || !col.IsNumeric() {
			report.ColumnsSkipped = append(report.ColumnsSkipped, name)
			continue
		}
		report.ColumnsUsed = append(report.ColumnsUsed, name)
		checked = append(checked, col)
	}

	out := t.FilterRows(func(row int) bool {
		for _, col := range checked {
			v := col.Values[row]
			if v.IsMissing() {
				if dropMissing {
					return false
				}
				continue
			}
			if f, _ := v.Float(); f < 0 {
				return false
			}
		}
		return true
	})

	report.RowsOut = out.NumRows()
	return out, report
}
