package tracking

import (
	"context"
	"log/slog"
)

// LoggingReporter implements Reporter by logging status changes.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	return &LoggingReporter{
		logger: logger,
	}
}

// OnChange logs the run status change.
func (r *LoggingReporter) OnChange(_ context.Context, status Status) error {
	if status.State() == StateFailed {
		r.logger.Error("assembly run failed",
			slog.String("run_id", status.ID()),
			slog.Int("built", status.Built()),
			slog.Int("failed", status.Failed()),
			slog.Int("total", status.Total()),
			slog.String("error", status.Error()),
		)
		return nil
	}

	msg := "assembly progress"
	if status.State() == StateCompleted {
		msg = "assembly complete"
	}
	r.logger.Info(msg,
		slog.String("run_id", status.ID()),
		slog.Int("built", status.Built()),
		slog.Int("failed", status.Failed()),
		slog.Int("total", status.Total()),
		slog.Float64("completion_percent", status.CompletionPercent()),
		slog.String("construct", status.Current()),
	)

	return nil
}
