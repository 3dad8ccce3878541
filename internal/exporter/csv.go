package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"housingprep/internal/config"
	apperrors "housingprep/internal/errors"
	"housingprep/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality. Paths are used as given;
// relative paths resolve against the working directory.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
	BoolAsInt bool // Write booleans as 1/0 instead of true/false
}

// DefaultWriteOptions returns the standard output format
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{BoolAsInt: true}
}

// WriteOptionsFrom maps the output section of the application config
func WriteOptionsFrom(cfg config.OutputConfig) WriteOptions {
	return WriteOptions{
		BOMPrefix: cfg.BOMPrefix,
		BoolAsInt: cfg.UseIntBool(),
	}
}

// WriteTable writes t as a header row followed by one record per row
func (w *CSVWriter) WriteTable(filePath string, t *domain.Table, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", t.NumRows()),
		slog.Int("column_count", t.NumCols()))

	stream, err := w.CreateStreamWriter(filePath, t.ColumnNames(), options.BOMPrefix)
	if err != nil {
		return err
	}

	columns := t.Columns()
	record := make([]string, len(columns))
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range columns {
			record[j] = formatValue(col.Values[i], options.BoolAsInt)
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.file.Close()
			return apperrors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("path", filePath)
		}
	}

	if err := stream.Close(); err != nil {
		return apperrors.NewStorageError("failed to flush csv", err).WithContext("path", filePath)
	}
	return nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates the file, its directory, and writes the header
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string, bom bool) (*StreamWriter, error) {
	// Ensure directory exists
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create directory", err).WithContext("path", dir)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to create file", err).WithContext("path", filePath)
	}

	// Write BOM if requested (helps Excel recognize UTF-8)
	if bom {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			file.Close()
			return nil, apperrors.NewStorageError("failed to write BOM", err).WithContext("path", filePath)
		}
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(headers); err != nil {
		file.Close()
		return nil, apperrors.NewStorageError("failed to write headers", err).WithContext("path", filePath)
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
