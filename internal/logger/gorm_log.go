package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLoggerService routes gorm's statement logging into a zerolog logger.
type GormLoggerService struct {
	Log           zerolog.Logger
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(log zerolog.Logger) *GormLoggerService {
	level := gormlogger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}
	return &GormLoggerService{
		Log:           log,
		Level:         level,
		SlowThreshold: defaultSlowThreshold,
	}
}

func (g *GormLoggerService) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.Level = level
	return &clone
}

func (g *GormLoggerService) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.Level >= gormlogger.Info {
		g.Log.Info().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g *GormLoggerService) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.Level >= gormlogger.Warn {
		g.Log.Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g *GormLoggerService) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.Level >= gormlogger.Error {
		g.Log.Error().Msg(fmt.Sprintf(msg, data...))
	}
}

func (g *GormLoggerService) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// lookups of missing rows are a normal outcome at every level
		return
	case err != nil && g.Level >= gormlogger.Error:
		sql, rows := fc()
		g.Log.Error().
			Err(err).
			Str("query", sql).
			Int64("rows", rows).
			Dur("duration_ms", elapsed).
			Msg("Query failed")
	case g.SlowThreshold > 0 && elapsed > g.SlowThreshold && g.Level >= gormlogger.Warn:
		sql, rows := fc()
		g.Log.Warn().
			Str("query", sql).
			Int64("rows", rows).
			Dur("duration_ms", elapsed).
			Msg("Slow query")
	case g.Level >= gormlogger.Info:
		sql, rows := fc()
		g.Log.Debug().
			Str("query", sql).
			Int64("rows", rows).
			Dur("duration_ms", elapsed).
			Msg("Executed query")
	}
}
