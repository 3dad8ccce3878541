package dataprocessing

import (
	"math"
	"slices"

	"housingprep/internal/config"
	"housingprep/pkg/contracts/domain"
)

// Ratio describes a derived column numerator/denominator
type Ratio struct {
	Name        string
	Numerator   string
	Denominator string
}

// Derived feature names
const (
	FeatureRoomsPerHousehold      = "rooms_per_household"
	FeatureBedroomsPerHousehold   = "bedrooms_per_household"
	FeatureBedroomsPerRoom        = "bedrooms_per_room"
	FeaturePopulationPerHousehold = "population_per_household"
	FeatureMedianIncomeSquared    = "median_income_squared"
)

// DefaultRatios returns the ratio features derived by the quality pipeline
func DefaultRatios() []Ratio {
	return []Ratio{
		{FeatureRoomsPerHousehold, config.ColumnTotalRooms, config.ColumnHouseholds},
		{FeatureBedroomsPerHousehold, config.ColumnTotalBedrooms, config.ColumnHouseholds},
		{FeatureBedroomsPerRoom, config.ColumnTotalBedrooms, config.ColumnTotalRooms},
		{FeaturePopulationPerHousehold, config.ColumnPopulation, config.ColumnHouseholds},
	}
}

// DeriveFeatures adds the default ratio features and median_income_squared.
// Each feature is computed only when its source columns exist and are
// numeric. A ratio cell is undefined when an operand is missing, the
// denominator is zero, or the result is not finite; undefined cells take the
// median of the valid ratios. A ratio with no valid cell stays missing and is
// reported as degenerate.
func DeriveFeatures(t *domain.Table) (*domain.Table, StageReport, error) {
	report := StageReport{Stage: StageIDFeatures, RowsIn: t.NumRows(), RowsOut: t.NumRows()}

	out := t
	for _, r := range DefaultRatios() {
		num, okNum := numericColumn(out, r.Numerator)
		den, okDen := numericColumn(out, r.Denominator)
		if !okNum || !okDen {
			report.skipFeature(r.Name, missingSources(out, r.Numerator, r.Denominator)...)
			continue
		}

		values, degenerate := ratioValues(num, den)
		if degenerate {
			report.Degenerate = append(report.Degenerate, r.Name)
		}

		var err error
		out, err = out.WithColumn(domain.Column{Name: r.Name, Type: domain.ColumnNumeric, Values: values})
		if err != nil {
			return nil, report, err
		}
		report.ColumnsAdded = append(report.ColumnsAdded, r.Name)
	}

	if income, ok := numericColumn(out, config.ColumnMedianIncome); ok {
		values := make([]domain.Value, len(income.Values))
		for i, v := range income.Values {
			if f, ok := v.Float(); ok {
				values[i] = domain.Number(f * f)
			}
		}
		var err error
		out, err = out.WithColumn(domain.Column{Name: FeatureMedianIncomeSquared, Type: domain.ColumnNumeric, Values: values})
		if err != nil {
			return nil, report, err
		}
		report.ColumnsAdded = append(report.ColumnsAdded, FeatureMedianIncomeSquared)
	} else {
		report.skipFeature(FeatureMedianIncomeSquared, config.ColumnMedianIncome)
	}

	return out, report, nil
}

// skipFeature records a feature left out and the source columns it lacked.
// Each source column is listed once.
func (r *StageReport) skipFeature(feature string, sources ...string) {
	r.FeaturesSkipped = append(r.FeaturesSkipped, feature)
	for _, src := range sources {
		if !slices.Contains(r.ColumnsSkipped, src) {
			r.ColumnsSkipped = append(r.ColumnsSkipped, src)
		}
	}
}

// missingSources returns the names that are absent or not numeric
func missingSources(t *domain.Table, names ...string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := numericColumn(t, name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

func numericColumn(t *domain.Table, name string) (*domain.Column, bool) {
	col, ok := t.Column(name)
	if !ok || !col.IsNumeric() {
		return nil, false
	}
	return col, true
}

// ratioValues divides num by den cell by cell and fills undefined cells with
// the median of the defined ones. degenerate is true when none is defined.
func ratioValues(num, den *domain.Column) (values []domain.Value, degenerate bool) {
	values = make([]domain.Value, len(num.Values))
	valid := make([]float64, 0, len(num.Values))
	for i := range num.Values {
		n, okN := num.Values[i].Float()
		d, okD := den.Values[i].Float()
		if !okN || !okD || d == 0 {
			continue
		}
		q := n / d
		if math.IsInf(q, 0) || math.IsNaN(q) {
			continue
		}
		values[i] = domain.Number(q)
		valid = append(valid, q)
	}

	fill, ok := median(valid)
	if !ok {
		return values, true
	}
	for i, v := range values {
		if v.IsMissing() {
			values[i] = domain.Number(fill)
		}
	}
	return values, false
}
