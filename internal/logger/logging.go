package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Setup sets the standard logger format with timestamp and file location,
// writing to stdout and, when logFile is not empty, appending to that file too.
// The returned closer releases the file.
func Setup(logFile string) (io.Closer, error) {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if logFile == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
