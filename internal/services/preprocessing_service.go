package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"housingprep/internal/config"
	"housingprep/internal/dataprocessing"
	"housingprep/internal/exporter"
	"housingprep/internal/infrastructure"
	"housingprep/internal/validation"
	"housingprep/pkg/contracts/domain"
)

// PreprocessingService runs the housing pipelines from file to file
type PreprocessingService struct {
	config    *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	base      *slog.Logger
	providers *infrastructure.OTelProviders
	validator *validation.FileValidator
	writer    *exporter.CSVWriter
}

// Result is the outcome of one pipeline run
type Result struct {
	Table      *domain.Table
	Report     *dataprocessing.RunReport
	OutputPath string
}

// RunAllRequest names the files of both pipelines
type RunAllRequest struct {
	RawInput        string
	ProcessedOutput string
	UrbanizedInput  string
	FinalOutput     string
}

// RunAllRequestFrom builds the default request from paths
func RunAllRequestFrom(paths *config.Paths) RunAllRequest {
	return RunAllRequest{
		RawInput:        paths.RawHousingCSV,
		ProcessedOutput: paths.ProcessedHousingCSV,
		UrbanizedInput:  paths.UrbanizedStatusCSV,
		FinalOutput:     paths.FinalHousingCSV,
	}
}

// RunAllResult holds the results of both pipelines
type RunAllResult struct {
	Quality  *Result
	Geometry *Result
}

// NewPreprocessingService creates the service. A nil cfg uses
// config.Default(); nil providers disable telemetry.
func NewPreprocessingService(cfg *config.Config, paths *config.Paths, logger *slog.Logger, providers *infrastructure.OTelProviders) *PreprocessingService {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if providers == nil {
		providers = infrastructure.NoopProviders(logger)
	}
	tagged := infrastructure.WithComponent(logger, "preprocessing_service")

	return &PreprocessingService{
		config:    cfg,
		paths:     paths,
		logger:    tagged,
		base:      logger,
		providers: providers,
		validator: validation.NewFileValidator(tagged),
		writer:    exporter.NewCSVWriter(tagged),
	}
}

// DefaultRequest returns the RunAll request for the service's default paths
func (s *PreprocessingService) DefaultRequest() RunAllRequest {
	return RunAllRequestFrom(s.paths)
}

// Preprocess runs the quality pipeline on input. With a non-empty output the
// result is written there; otherwise nothing is written.
func (s *PreprocessingService) Preprocess(ctx context.Context, input, output string) (*Result, error) {
	pipeline, err := dataprocessing.NewQualityPipeline(
		dataprocessing.QualityOptionsFrom(s.config.Quality), s.base, s.providers)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, pipeline, input, output)
}

// Wrangle runs the geometry pipeline on input. With a non-empty output the
// result is written there; otherwise nothing is written.
func (s *PreprocessingService) Wrangle(ctx context.Context, input, output string) (*Result, error) {
	pipeline, err := dataprocessing.NewGeometryPipeline(
		dataprocessing.GeometryOptionsFrom(s.config.Geometry), s.base, s.providers)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, pipeline, input, output)
}

// RunAll runs both pipelines concurrently. They share no table; the first
// error cancels the other run.
func (s *PreprocessingService) RunAll(ctx context.Context, req RunAllRequest) (*RunAllResult, error) {
	result := &RunAllResult{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		res, err := s.Preprocess(ctx, req.RawInput, req.ProcessedOutput)
		if err != nil {
			return fmt.Errorf("preprocess: %w", err)
		}
		result.Quality = res
		return nil
	})

	g.Go(func() error {
		res, err := s.Wrangle(ctx, req.UrbanizedInput, req.FinalOutput)
		if err != nil {
			return fmt.Errorf("wrangle: %w", err)
		}
		result.Geometry = res
		return nil
	})

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// Transform runs pipeline on an in-memory table
func (s *PreprocessingService) Transform(ctx context.Context, pipeline *dataprocessing.Pipeline, table *domain.Table) (*Result, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	out, report, err := pipeline.Run(ctx, table)
	if err != nil {
		return &Result{Report: report}, err
	}
	return &Result{Table: out, Report: report}, nil
}

func (s *PreprocessingService) run(ctx context.Context, pipeline *dataprocessing.Pipeline, input, output string) (*Result, error) {
	if input == "" {
		return nil, ErrNoInput
	}
	ctx = infrastructure.EnsureRunID(ctx)

	if err := s.validator.ValidateInputFile(input); err != nil {
		return nil, err
	}
	if output != "" {
		if err := s.validator.ValidateOutputFile(input, output); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "Loading input",
		slog.String("pipeline", pipeline.Name()),
		slog.String("input", input))
	table, err := dataprocessing.LoadTable(input)
	if err != nil {
		infrastructure.WithError(s.logger, err).ErrorContext(ctx, "Failed to load input",
			slog.String("input", input))
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to load %s: %w", input, err)
	}

	result, err := s.Transform(ctx, pipeline, table)
	if err != nil {
		return result, err
	}

	if output == "" {
		return result, nil
	}
	if err := s.writer.WriteTable(output, result.Table, exporter.WriteOptionsFrom(s.config.Output)); err != nil {
		return result, fmt.Errorf("failed to write %s: %w", output, err)
	}
	result.OutputPath = output

	s.logger.InfoContext(ctx, "Output written",
		slog.String("pipeline", pipeline.Name()),
		slog.String("output", output),
		slog.Int("rows", result.Table.NumRows()),
		slog.Int("columns", result.Table.NumCols()))
	return result, nil
}
