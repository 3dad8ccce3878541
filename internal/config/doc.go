// Package config provides centralized configuration management for housingprep.
// It handles loading configuration from multiple sources, validation, and the
// default file layout.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (HOUSING_CONFIG, or housingprep.yaml next to the executable)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HOUSING_<SECTION>_<FIELD>:
//
//	HOUSING_LOGGING_LEVEL=debug
//	HOUSING_QUALITY_NON_NEGATIVE_COLUMNS=total_rooms,households
//	HOUSING_QUALITY_CATEGORICAL_COLUMN=ocean_proximity
//	HOUSING_GEOMETRY_PRECISION=2
//	HOUSING_TELEMETRY_METRIC_EXPORTER=prometheus
//	HOUSING_PATHS_BASE_DIR=/srv/housing
//
// # Path Management
//
// Paths lays out the dataset directories under a base directory, by default
// the directory holding the executable:
//
//	paths, err := config.ResolvePaths(cfg)
//	in := paths.RawHousingCSV        // data/raw/housing.csv
//	out := paths.ProcessedHousingCSV // data/processed/housing_processed.csv
package config
