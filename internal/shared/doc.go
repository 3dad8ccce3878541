// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler so tests can
// assert on the structured records a pipeline run emits.
package shared
