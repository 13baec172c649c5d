package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"facegate/internal/config"
)

// Logger provides leveled logging (info/warning/error) to per-level files
// plus stdout/stderr.
type Logger struct {
	infoLog    *log.Logger
	warningLog *log.Logger
	errorLog   *log.Logger
	mu         sync.Mutex
}

// NewLogger creates a Logger and ensures the log directory exists.
func NewLogger(cfg *config.Config) *Logger {
	if err := os.MkdirAll(cfg.LogDirectory, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	return &Logger{
		infoLog:    newLevelLogger(cfg.LogDirectory, "info.log", os.Stdout, "ℹ️  INFO    "),
		warningLog: newLevelLogger(cfg.LogDirectory, "warning.log", os.Stdout, "⚠️  WARNING "),
		errorLog:   newLevelLogger(cfg.LogDirectory, "error.log", os.Stderr, "❌ ERROR   "),
	}
}

func newLevelLogger(dir, filename string, console io.Writer, prefix string) *log.Logger {
	path := filepath.Join(dir, filename)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file %s: %v", path, err)
	}
	return log.New(io.MultiWriter(console, file), prefix, log.Ldate|log.Ltime)
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infoLog.Printf(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warningLog.Printf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorLog.Printf(format, v...)
}
