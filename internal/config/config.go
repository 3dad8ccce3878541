package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "housingprep/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Quality   QualityConfig   `yaml:"quality" envconfig:"QUALITY"`
	Geometry  GeometryConfig  `yaml:"geometry" envconfig:"GEOMETRY"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// QualityConfig drives the quality pipeline
type QualityConfig struct {
	NonNegativeColumns []string `yaml:"non_negative_columns" envconfig:"NON_NEGATIVE_COLUMNS" validate:"dive,required"`
	CategoricalColumn  string   `yaml:"categorical_column" envconfig:"CATEGORICAL_COLUMN" validate:"required"`
	DropMissing        bool     `yaml:"drop_missing" envconfig:"DROP_MISSING"`
	AllowDegenerate    bool     `yaml:"allow_degenerate" envconfig:"ALLOW_DEGENERATE"`
}

// GeometryConfig drives the geometry pipeline
type GeometryConfig struct {
	Column      string `yaml:"column" envconfig:"COLUMN" validate:"required"`
	IndexColumn string `yaml:"index_column" envconfig:"INDEX_COLUMN"`
	Precision   int    `yaml:"precision" envconfig:"PRECISION" validate:"min=0,max=10"`
}

// OutputConfig controls how tables are written
type OutputConfig struct {
	BOMPrefix  bool   `yaml:"bom_prefix" envconfig:"BOM_PREFIX"`
	BoolFormat string `yaml:"bool_format" envconfig:"BOOL_FORMAT" validate:"oneof=int word"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricExporter string `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=none prometheus"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	BaseDir string `yaml:"base_dir" envconfig:"BASE_DIR"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/housingprep.log",
		},
		Quality: QualityConfig{
			NonNegativeColumns: DefaultNonNegativeColumns(),
			CategoricalColumn:  ColumnOceanProximity,
		},
		Geometry: GeometryConfig{
			Column:      ColumnGeometry,
			IndexColumn: ColumnSystemIndex,
			Precision:   DefaultCoordPrecision,
		},
		Output: OutputConfig{
			BoolFormat: "int",
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  "none",
			MetricExporter: "none",
		},
	}
}

// Load loads configuration from defaults, the config file and environment
// variables, in increasing order of precedence
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file. A file that does not exist
// is skipped.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// Environment variables last; unset variables leave fields untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns HOUSING_CONFIG, or the default file next to the
// executable
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), DefaultConfigFileName)
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}
	return nil
}

// UseIntBool reports whether booleans are written as 1/0
func (c OutputConfig) UseIntBool() bool {
	return c.BoolFormat != "word"
}
