package config

// Application constants
const (
	AppName = "housingprep"

	// EnvPrefix namespaces every environment variable, e.g. HOUSING_LOGGING_LEVEL
	EnvPrefix = "HOUSING"

	// ConfigFileEnv names the environment variable pointing at a YAML config file
	ConfigFileEnv = "HOUSING_CONFIG"

	// DefaultConfigFileName is looked up next to the executable
	DefaultConfigFileName = "housingprep.yaml"
)

// Well-known dataset columns
const (
	ColumnTotalRooms      = "total_rooms"
	ColumnTotalBedrooms   = "total_bedrooms"
	ColumnPopulation      = "population"
	ColumnHouseholds      = "households"
	ColumnMedianIncome    = "median_income"
	ColumnOceanProximity  = "ocean_proximity"
	ColumnGeometry        = ".geo"
	ColumnSystemIndex     = "system:index"
	ColumnLongitude       = "longitude"
	ColumnLatitude        = "latitude"
	DefaultCoordPrecision = 2
)

// Well-known dataset files, relative to the data directory
const (
	RawHousingFile       = "raw/housing.csv"
	ProcessedHousingFile = "processed/housing_processed.csv"
	UrbanizedStatusFile  = "intermediate/houses_with_urbanized_status.csv"
	FinalHousingFile     = "processed/housing_final.csv"
)

// DefaultNonNegativeColumns are the quantities that can never be negative
func DefaultNonNegativeColumns() []string {
	return []string{
		ColumnTotalRooms,
		ColumnTotalBedrooms,
		ColumnPopulation,
		ColumnHouseholds,
		ColumnMedianIncome,
	}
}
