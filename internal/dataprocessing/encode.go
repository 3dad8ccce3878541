package dataprocessing

import (
	"sort"

	"housingprep/pkg/contracts/domain"
)

// EncodeOneHot replaces field with one boolean column per distinct value,
// named <field>_<value> and appended in sorted value order. Missing cells
// are false in every indicator. A table without field passes through.
//
// The vocabulary is whatever this table holds: two tables with different
// category sets produce different columns.
func EncodeOneHot(t *domain.Table, field string) (*domain.Table, StageReport, error) {
	report := StageReport{Stage: StageIDEncode, RowsIn: t.NumRows(), RowsOut: t.NumRows()}

	col, ok := t.Column(field)
	if !ok {
		report.ColumnsSkipped = []string{field}
		return t, report, nil
	}
	report.ColumnsUsed = []string{field}

	seen := make(map[domain.Value]bool)
	var categories []domain.Value
	for _, v := range col.Values {
		if v.IsMissing() || seen[v] {
			continue
		}
		seen[v] = true
		categories = append(categories, v)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Less(categories[j]) })

	out := t
	for _, category := range categories {
		values := make([]domain.Value, len(col.Values))
		for i, v := range col.Values {
			values[i] = domain.Bool(v == category)
		}
		name := field + "_" + category.String()

		var err error
		out, err = out.WithColumn(domain.Column{Name: name, Type: domain.ColumnBool, Values: values})
		if err != nil {
			return nil, report, err
		}
		report.ColumnsAdded = append(report.ColumnsAdded, name)
	}

	out = out.Drop(field)
	report.ColumnsDropped = []string{field}
	return out, report, nil
}
