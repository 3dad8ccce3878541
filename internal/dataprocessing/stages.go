package dataprocessing

import (
	"context"

	"housingprep/internal/config"
	"housingprep/pkg/contracts/domain"
)

// FilterStage drops rows with negative quantities
type FilterStage struct {
	BaseStage
	opts QualityOptions
}

// NewFilterStage creates the row filter stage
func NewFilterStage(opts QualityOptions) *FilterStage {
	return &FilterStage{
		BaseStage: NewBaseStage(StageIDFilter, StageNameFilter, StageSchema{Optional: opts.NonNegativeColumns}),
		opts:      opts,
	}
}

// Apply implements Stage
func (s *FilterStage) Apply(_ context.Context, t *domain.Table) (*domain.Table, StageReport, error) {
	out, report := FilterNegative(t, s.opts.NonNegativeColumns, s.opts.DropMissing)
	return out, report, nil
}

// ImputeStage fills missing cells
type ImputeStage struct {
	BaseStage
	opts QualityOptions
}

// NewImputeStage creates the null imputer stage
func NewImputeStage(opts QualityOptions) *ImputeStage {
	return &ImputeStage{
		BaseStage: NewBaseStage(StageIDImpute, StageNameImpute, StageSchema{}),
		opts:      opts,
	}
}

// Apply implements Stage
func (s *ImputeStage) Apply(_ context.Context, t *domain.Table) (*domain.Table, StageReport, error) {
	return ImputeNulls(t, s.opts.AllowDegenerate)
}

// EncodeStage one-hot encodes the categorical column
type EncodeStage struct {
	BaseStage
	field string
}

// NewEncodeStage creates the categorical encoder stage
func NewEncodeStage(opts QualityOptions) *EncodeStage {
	return &EncodeStage{
		BaseStage: NewBaseStage(StageIDEncode, StageNameEncode, StageSchema{Optional: []string{opts.CategoricalColumn}}),
		field:     opts.CategoricalColumn,
	}
}

// Apply implements Stage
func (s *EncodeStage) Apply(_ context.Context, t *domain.Table) (*domain.Table, StageReport, error) {
	return EncodeOneHot(t, s.field)
}

// FeaturesStage derives the ratio features
type FeaturesStage struct {
	BaseStage
}

// NewFeaturesStage creates the feature deriver stage
func NewFeaturesStage() *FeaturesStage {
	return &FeaturesStage{
		BaseStage: NewBaseStage(StageIDFeatures, StageNameFeatures, StageSchema{Optional: []string{
			config.ColumnTotalRooms,
			config.ColumnTotalBedrooms,
			config.ColumnPopulation,
			config.ColumnHouseholds,
			config.ColumnMedianIncome,
		}}),
	}
}

// Apply implements Stage
func (s *FeaturesStage) Apply(_ context.Context, t *domain.Table) (*domain.Table, StageReport, error) {
	return DeriveFeatures(t)
}

// GeometryStage extracts longitude and latitude
type GeometryStage struct {
	BaseStage
	opts GeometryOptions
}

// NewGeometryStage creates the geometry extractor stage
func NewGeometryStage(opts GeometryOptions) *GeometryStage {
	schema := StageSchema{Required: []string{opts.Column}}
	if opts.IndexColumn != "" {
		schema.Optional = []string{opts.IndexColumn}
	}
	return &GeometryStage{
		BaseStage: NewBaseStage(StageIDGeometry, StageNameGeometry, schema),
		opts:      opts,
	}
}

// Apply implements Stage
func (s *GeometryStage) Apply(_ context.Context, t *domain.Table) (*domain.Table, StageReport, error) {
	return ExtractCoordinates(t, s.opts)
}

// QualityStages returns the Pipeline A stages in order
func QualityStages(opts QualityOptions) []Stage {
	return []Stage{
		NewFilterStage(opts),
		NewImputeStage(opts),
		NewEncodeStage(opts),
		NewFeaturesStage(),
	}
}

// GeometryStages returns the Pipeline B stages in order
func GeometryStages(opts GeometryOptions) []Stage {
	return []Stage{NewGeometryStage(opts)}
}
