// Package output provides terminal output utilities.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide logger. It writes to stderr so stdout stays
// reserved for generated module text.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// stdout is where Print and Println write.
var stdout io.Writer = os.Stdout

// LogConfig controls logger setup.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and timestamps.
	Verbose bool

	// Timestamps toggles timestamps. Nil means on.
	Timestamps *bool
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// SetupLogging configures the logger. Verbose forces timestamps on.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil && !cfg.Verbose {
		timestamps = *cfg.Timestamps
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// Logger returns the current logger.
func Logger() *log.Logger {
	return logger
}

// ResourceLogger returns a child logger prefixed with a resource path.
func ResourceLogger(resource string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("t:") + StyleNoun.Render(resource))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Print writes msg to stdout without any formatting.
func Print(msg string) {
	_, _ = io.WriteString(stdout, msg)
}

// Println writes msg and a newline to stdout.
func Println(msg string) {
	_, _ = io.WriteString(stdout, msg+"\n")
}
