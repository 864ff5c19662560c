// Package debug provides opt-in debug logging for tcd.
//
// The terminal is owned by the browser while it runs, so messages go to a
// file instead of stderr. Logging is enabled by setting TCD_DEBUG:
//
//	TCD_DEBUG=1 tcd              # logs to ./tcd-debug.log
//	TCD_DEBUG=/tmp/tcd.log tcd   # logs to /tmp/tcd.log
//
// or with log_file in the config. When disabled every function is a no-op.
package debug

import (
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultLogFile is used when TCD_DEBUG is set to a plain truthy value.
const DefaultLogFile = "tcd-debug.log"

var (
	enabled bool
	logger  *log.Logger
)

// PathFromEnv returns the log file requested through TCD_DEBUG, or "".
func PathFromEnv() string {
	switch v := os.Getenv("TCD_DEBUG"); v {
	case "", "0", "false":
		return ""
	case "1", "true":
		return DefaultLogFile
	default:
		return v
	}
}

// Open starts logging to path. The returned closer must be called on exit.
func Open(path string) (io.Closer, error) {
	f, err := tea.LogToFile(path, "tcd")
	if err != nil {
		return nil, err
	}
	logger = log.Default()
	logger.SetFlags(log.Ltime | log.Lmicroseconds)
	enabled = true
	return f, nil
}

// SetOutput directs logging to w; a nil writer disables logging.
func SetOutput(w io.Writer) {
	if w == nil {
		enabled = false
		logger = nil
		return
	}
	logger = log.New(w, "tcd ", log.Ltime|log.Lmicroseconds)
	enabled = true
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// Log writes a printf-style message if logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long an operation took.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}
