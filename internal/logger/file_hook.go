package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// DefaultLogDir is used when no directory is configured.
var DefaultLogDir = filepath.Join(os.TempDir(), "treesearch")

// NewFileHook returns a hook writing every level to dir/treesearch.log,
// rotated daily.
func NewFileHook(dir string) (logrus.Hook, error) {
	if dir == "" {
		dir = DefaultLogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create log directory %s", dir)
	}

	path := filepath.Join(dir, "treesearch.log")
	writer, err := rotatelogs.New(
		path+".%Y%m%d",
		rotatelogs.WithLinkName(path),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rotating log writer")
	}

	return lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{
		DisableColors: true,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		},
	}), nil
}
