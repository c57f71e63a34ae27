package logging

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// gormWriter forwards GORM's printf-style output into zerolog.
type gormWriter struct {
	level zerolog.Level
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	mu.RLock()
	defer mu.RUnlock()
	log.WithLevel(w.level).Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}

// GormLogger returns a GORM logger backed by the global zerolog logger.
// At debug level every statement is traced, otherwise only slow queries and errors are written.
func GormLogger(level string) gormlogger.Interface {
	writer := gormWriter{level: zerolog.WarnLevel}
	logLevel := gormlogger.Warn

	switch ParseLevel(level) {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		writer.level = zerolog.DebugLevel
		logLevel = gormlogger.Info
	case zerolog.Disabled:
		logLevel = gormlogger.Silent
	}

	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
