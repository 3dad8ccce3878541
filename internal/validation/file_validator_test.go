package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "housingprep/internal/errors"
)

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
		errType   apperrors.ErrorType
	}{
		{
			name: "csv file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "housing.csv")
				require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0644))
				return path
			},
		},
		{
			name: "xlsx file with upper case extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "housing.XLSX")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "housing.csv")
			},
			wantErr: true,
			errType: apperrors.ErrTypeNotFound,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "housing.csv")
				require.NoError(t, os.Mkdir(path, 0755))
				return path
			},
			wantErr: true,
			errType: apperrors.ErrTypeValidation,
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "housing.parquet")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantErr: true,
			errType: apperrors.ErrTypeValidation,
		},
		{
			name: "excel lock file",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "~$housing.xlsx")
				require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
				return path
			},
			wantErr: true,
			errType: apperrors.ErrTypeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewFileValidator(nil)
			err := v.ValidateInputFile(tt.setupFunc(t))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFileValidator_ValidateOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "raw", "housing.csv")
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		out := filepath.Join(dir, "processed", "housing_processed.csv")
		require.NoError(t, v.ValidateOutputFile(input, out))
		assert.DirExists(t, filepath.Join(dir, "processed"))
		assert.NoFileExists(t, filepath.Join(dir, "processed", ".write_test"))
	})

	t.Run("rejects overwriting input", func(t *testing.T) {
		err := v.ValidateOutputFile(input, filepath.Join(dir, "raw", ".", "housing.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	})

	t.Run("rejects non csv output", func(t *testing.T) {
		err := v.ValidateOutputFile(input, filepath.Join(dir, "out.xlsx"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
	})

	t.Run("rejects directory output", func(t *testing.T) {
		out := filepath.Join(dir, "taken.csv")
		require.NoError(t, os.Mkdir(out, 0755))
		err := v.ValidateOutputFile(input, out)
		require.Error(t, err)
	})

	t.Run("unwritable parent", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))
		err := v.ValidateOutputFile("", filepath.Join(blocker, "out.csv"))
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
	})
}
