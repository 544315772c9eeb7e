package fakedata

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/creditgen/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging initialises the global logger on stdout and, when logFile is
// set, on that file too.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}
