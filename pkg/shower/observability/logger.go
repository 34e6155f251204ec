// Package observability provides structured logging, metrics, and
// tracing helpers for shower runs.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when
// disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123")
//	enriched.Info("evolving") // includes run_id
func EnrichLogger(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("run_id", runID))
}

// LogRunStart logs the start of a shower run.
func LogRunStart(logger *slog.Logger, runID string, realizations, dipoles int) {
	if logger == nil {
		return
	}
	logger.Info("shower run starting",
		slog.String("run_id", runID),
		slog.Int("realizations", realizations),
		slog.Int("dipoles", dipoles),
	)
}

// LogRunComplete logs successful run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, realizations, emissions int) {
	if logger == nil {
		return
	}
	logger.Info("shower run completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("realizations", realizations),
		slog.Int("emissions", emissions),
	)
}

// LogRunError logs run failure.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("shower run failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDroppedFills warns about histogram fills beyond the range.
// Non-fatal: the simulation continues, the bins just don't see them.
func LogDroppedFills(logger *slog.Logger, runID string, dropped int) {
	if logger == nil || dropped == 0 {
		return
	}
	logger.Warn("histogram fills out of range",
		slog.String("run_id", runID),
		slog.Int("dropped", dropped),
	)
}

// LogWeightMismatch warns about events whose weights disagree within
// one accumulation batch.
func LogWeightMismatch(logger *slog.Logger, want, got float64) {
	if logger == nil {
		return
	}
	logger.Warn("event weight differs within batch",
		slog.Float64("expected", want),
		slog.Float64("got", got),
	)
}

// LogResultSaved logs a persisted run summary.
func LogResultSaved(logger *slog.Logger, runID string, bins int) {
	if logger == nil {
		return
	}
	logger.Debug("run summary saved",
		slog.String("run_id", runID),
		slog.Int("bins", bins),
	)
}

// LogResultSaveError logs a failed summary save (non-fatal).
func LogResultSaveError(logger *slog.Logger, runID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("run summary save failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in
// milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
