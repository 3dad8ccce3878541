package dataprocessing

import (
	"time"

	"housingprep/internal/config"
)

// Stage identifiers
const (
	StageIDFilter   = "filter_negative"
	StageIDImpute   = "impute_nulls"
	StageIDEncode   = "encode_categorical"
	StageIDFeatures = "derive_features"
	StageIDGeometry = "extract_coordinates"
)

// Stage names
const (
	StageNameFilter   = "Row Filter"
	StageNameImpute   = "Null Imputer"
	StageNameEncode   = "Categorical Encoder"
	StageNameFeatures = "Feature Deriver"
	StageNameGeometry = "Geometry Extractor"
)

// Pipeline names
const (
	PipelineQuality  = "quality"
	PipelineGeometry = "geometry"
)

// StageSchema lists the columns a stage needs. A table missing a Required
// column fails the stage; Optional columns are used when present.
type StageSchema struct {
	Required []string
	Optional []string
}

// StageReport is what a stage did to the table. FeaturesSkipped lists the
// derived features left out for lack of source columns.
type StageReport struct {
	Stage           string
	RowsIn          int
	RowsOut         int
	ColumnsUsed     []string
	ColumnsSkipped  []string
	ColumnsAdded    []string
	ColumnsDropped  []string
	FeaturesSkipped []string
	Imputations     []Imputation
	Degenerate      []string
	ParseFailures   int
	FailureSamples  []ParseFailure
	Duration        time.Duration
}

// RowsDropped returns how many rows the stage removed
func (r StageReport) RowsDropped() int {
	return r.RowsIn - r.RowsOut
}

// ValuesImputed returns how many cells the stage filled
func (r StageReport) ValuesImputed() int {
	n := 0
	for _, imp := range r.Imputations {
		n += imp.Count
	}
	return n
}

// RunReport summarizes one pipeline run
type RunReport struct {
	RunID    string
	Pipeline string
	RowsIn   int
	RowsOut  int
	Stages   []StageReport
	Duration time.Duration
}

// ParseFailures totals the geometry failures across stages
func (r *RunReport) ParseFailures() int {
	n := 0
	for _, s := range r.Stages {
		n += s.ParseFailures
	}
	return n
}

// QualityOptions configures the quality pipeline
type QualityOptions struct {
	NonNegativeColumns []string
	CategoricalColumn  string
	DropMissing        bool
	AllowDegenerate    bool
}

// DefaultQualityOptions returns the standard quality options
func DefaultQualityOptions() QualityOptions {
	return QualityOptions{
		NonNegativeColumns: config.DefaultNonNegativeColumns(),
		CategoricalColumn:  config.ColumnOceanProximity,
	}
}

// QualityOptionsFrom maps the quality section of the application config
func QualityOptionsFrom(cfg config.QualityConfig) QualityOptions {
	return QualityOptions{
		NonNegativeColumns: cfg.NonNegativeColumns,
		CategoricalColumn:  cfg.CategoricalColumn,
		DropMissing:        cfg.DropMissing,
		AllowDegenerate:    cfg.AllowDegenerate,
	}
}

// GeometryOptions configures coordinate extraction
type GeometryOptions struct {
	Column          string
	IndexColumn     string
	LongitudeColumn string
	LatitudeColumn  string
	Precision       int
}

// DefaultGeometryOptions returns the standard geometry options
func DefaultGeometryOptions() GeometryOptions {
	return GeometryOptions{
		Column:          config.ColumnGeometry,
		IndexColumn:     config.ColumnSystemIndex,
		LongitudeColumn: config.ColumnLongitude,
		LatitudeColumn:  config.ColumnLatitude,
		Precision:       config.DefaultCoordPrecision,
	}
}

// GeometryOptionsFrom maps the geometry section of the application config
func GeometryOptionsFrom(cfg config.GeometryConfig) GeometryOptions {
	opts := DefaultGeometryOptions()
	opts.Column = cfg.Column
	opts.IndexColumn = cfg.IndexColumn
	opts.Precision = cfg.Precision
	return opts
}
