package exporter

import (
	"housingprep/pkg/contracts/domain"
)

// formatValue formats a cell for CSV output. Missing cells are empty.
func formatValue(v domain.Value, boolAsInt bool) string {
	if v.Kind == domain.KindBool {
		return formatBool(v.Bool, boolAsInt)
	}
	return v.String()
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool, asInt bool) string {
	switch {
	case asInt && b:
		return "1"
	case asInt:
		return "0"
	case b:
		return "True"
	default:
		return "False"
	}
}
