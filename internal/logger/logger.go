// Package logger configures the global logrus logger used by the CLI.
package logger

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LogOptions controls Init.
type LogOptions struct {
	// OutputDir receives treesearch.log when LogToFile is set.
	OutputDir string
	// Verbose switches to debug level.
	Verbose bool
	// DisableColor disables ANSI colors on the console.
	DisableColor bool
	// HideLogTime omits timestamps.
	HideLogTime bool
	// LogToFile also writes every entry to a daily rotated file.
	LogToFile bool
}

// Init applies options to the standard logrus logger.
func Init(options LogOptions) error {
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetReportCaller(true)

	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
		HideLogTime:  options.HideLogTime,
	})

	if options.LogToFile {
		fh, err := NewFileHook(options.OutputDir)
		if err != nil {
			return errors.Wrap(err, "failed to init log file hook")
		}
		logrus.AddHook(fh)
	}

	return nil
}
