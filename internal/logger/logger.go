package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	log *slog.Logger
	mu  sync.RWMutex
)

// InitWithWriter позволяет задать уровень и writer (используется в тестах)
func InitWithWriter(env, level string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     parseLevel(level, slog.LevelInfo),
		AddSource: env != "test",
	}

	if env == "development" {
		// Development: читаемый текстовый формат
		opts.Level = parseLevel(level, slog.LevelDebug)
		handler = slog.NewTextHandler(w, opts)
	} else {
		// Production: JSON формат для парсинга
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)

	mu.Lock()
	log = l
	mu.Unlock()

	slog.SetDefault(l)
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// current - глобальный логгер; без InitWithWriter - текстовый в stdout
func current() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()

	if l == nil {
		InitWithWriter("development", "", os.Stdout)
		mu.RLock()
		l = log
		mu.RUnlock()
	}
	return l
}

// ============================================
// Convenience функции для быстрого логирования
// ============================================

func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Fatal логирует fatal ошибку и завершает программу
func Fatal(msg string, args ...any) {
	current().Error(msg, args...)
	os.Exit(1)
}

// ============================================
// Специализированные логгеры
// ============================================

// DBLog логирует database операцию
func DBLog(operation string, duration time.Duration, err error) {
	fields := []any{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		current().Error("database operation failed", fields...)
	} else {
		current().Debug("database operation", fields...)
	}
}

// WorkerLog логирует background worker операцию
func WorkerLog(worker, operation string, affected int64, err error) {
	fields := []any{
		"worker", worker,
		"operation", operation,
		"affected", affected,
	}

	if err != nil {
		fields = append(fields, "error", err.Error())
		current().Error("worker operation failed", fields...)
	} else {
		current().Info("worker operation completed", fields...)
	}
}
