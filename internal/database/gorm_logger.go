package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// queryLogger bridges GORM's logger.Interface onto the process-wide slog
// handler so SQL activity lands in the same stream as application logs.
// GORM's own level configuration is ignored; the active slog level decides
// what is emitted.
type queryLogger struct{}

// LogMode is a no-op since level filtering happens in slog.
func (l queryLogger) LogMode(logger.LogLevel) logger.Interface { return l }

// Info forwards GORM informational messages to slog.
func (l queryLogger) Info(_ context.Context, msg string, args ...any) {
	slog.Info(fmt.Sprintf(msg, args...))
}

// Warn forwards GORM warnings to slog.
func (l queryLogger) Warn(_ context.Context, msg string, args ...any) {
	slog.Warn(fmt.Sprintf(msg, args...))
}

// Error forwards GORM errors to slog.
func (l queryLogger) Error(_ context.Context, msg string, args ...any) {
	slog.Error(fmt.Sprintf(msg, args...))
}

// maxLoggedSQL caps the SQL text included in a log record. Catalog inserts
// carry serialized feature metadata, so statements are cut down before
// logging.
const maxLoggedSQL = 200

// truncateSQL keeps the head and tail of an oversized statement so both the
// verb and the trailing WHERE clause stay readable.
func truncateSQL(sql string) string {
	if len(sql) <= maxLoggedSQL {
		return sql
	}
	half := (maxLoggedSQL - 3) / 2
	return sql[:half] + "..." + sql[len(sql)-half:]
}

// Trace runs after every SQL operation. ErrRecordNotFound is the ordinary
// empty result of First and is treated as a successful query. Debug records
// are skipped entirely when the slog level is above Debug so the SQL string
// is never formatted in production.
func (l queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		sql, rows := fc()
		slog.Error("database query failed",
			"sql", truncateSQL(sql),
			"rows", rows,
			"elapsed", elapsed,
			"error", err,
		)
		return
	}

	if !slog.Default().Enabled(ctx, slog.LevelDebug) {
		return
	}

	sql, rows := fc()
	slog.Debug("database query",
		"sql", truncateSQL(sql),
		"rows", rows,
		"elapsed", elapsed,
	)
}
