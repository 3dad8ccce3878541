package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every default file location.
type Paths struct {
	BaseDir         string
	DataDir         string
	RawDir          string
	IntermediateDir string
	ProcessedDir    string
	LogsDir         string
	ConfigFile      string

	// Well-known dataset files
	RawHousingCSV       string
	ProcessedHousingCSV string
	UrbanizedStatusCSV  string
	FinalHousingCSV     string
	MetricsFile         string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// NewPaths lays out every path under baseDir:
//
//	base/
//	  ├── housingprep.yaml
//	  ├── data/
//	  │   ├── raw/            (housing.csv)
//	  │   ├── intermediate/   (Earth Engine exports)
//	  │   └── processed/      (pipeline outputs)
//	  └── logs/
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	logsDir := filepath.Join(baseDir, "logs")

	return &Paths{
		BaseDir:         baseDir,
		DataDir:         dataDir,
		RawDir:          filepath.Join(dataDir, "raw"),
		IntermediateDir: filepath.Join(dataDir, "intermediate"),
		ProcessedDir:    filepath.Join(dataDir, "processed"),
		LogsDir:         logsDir,
		ConfigFile:      filepath.Join(baseDir, DefaultConfigFileName),

		RawHousingCSV:       filepath.Join(dataDir, filepath.FromSlash(RawHousingFile)),
		ProcessedHousingCSV: filepath.Join(dataDir, filepath.FromSlash(ProcessedHousingFile)),
		UrbanizedStatusCSV:  filepath.Join(dataDir, filepath.FromSlash(UrbanizedStatusFile)),
		FinalHousingCSV:     filepath.Join(dataDir, filepath.FromSlash(FinalHousingFile)),
		MetricsFile:         filepath.Join(logsDir, "housingprep.prom"),
	}
}

// ResolvePaths returns paths rooted at cfg.Paths.BaseDir when set, otherwise
// next to the executable
func ResolvePaths(cfg *Config) (*Paths, error) {
	if cfg != nil && cfg.Paths.BaseDir != "" {
		base, err := filepath.Abs(cfg.Paths.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base dir: %w", err)
		}
		return NewPaths(base), nil
	}
	return GetPaths()
}

// EnsureDirectories creates the output directories. Input directories are
// never created: a missing input is reported by the loader.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ProcessedDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetLogPath returns a file path in the logs directory
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Path resolution",
		slog.String("base_dir", p.BaseDir),
		slog.String("data_dir", p.DataDir),
		slog.String("processed_dir", p.ProcessedDir),
		slog.String("logs_dir", p.LogsDir),
		slog.String("config_file", p.ConfigFile))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
