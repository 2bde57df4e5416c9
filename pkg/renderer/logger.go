package renderer

import (
	"io"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing timestamped lines to stderr
type DefaultLogger struct {
	logger *log.Logger
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.logger.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// NewDiscardLogger creates a logger that drops all output
func NewDiscardLogger() core.Logger {
	return &DefaultLogger{logger: log.New(io.Discard, "", 0)}
}
