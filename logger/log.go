package logger

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "foodgram"

// Logger is a no-op until InitializeLogger runs, so packages and tests can log
// without initializing anything.
var Logger = zap.NewNop()

// InitializeLogger installs the global logger. ENV=production selects JSON
// output; FOODGRAM_LOG_LEVEL overrides the level (debug, info, warn, error).
func InitializeLogger() {
	l, err := newLogger(os.Getenv("ENV"), os.Getenv("FOODGRAM_LOG_LEVEL"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = l
}

func newLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build(zap.Fields(zap.String("service", serviceName)))
}

// Close flushes buffered entries.
func Close() {
	if err := Logger.Sync(); err != nil {
		// stderr/stdout sinks return EINVAL on some platforms
		log.Printf("failed to flush log entries: %v", err)
	}
}

func GetLogger() *zap.Logger {
	return Logger
}

// Named returns a child of the global logger for one subsystem.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

// Global logging methods to avoid `logger.Logger` repetition

func Info(msg string, args ...zapcore.Field) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...zapcore.Field) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...zapcore.Field) {
	Logger.Error(msg, args...)
}

func Fatal(msg string, args ...zapcore.Field) {
	Logger.Fatal(msg, args...)
}

func Debug(msg string, args ...zapcore.Field) {
	Logger.Debug(msg, args...)
}
