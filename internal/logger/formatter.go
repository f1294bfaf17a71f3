package logger

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	colorRed    = 31
	colorYellow = 33
	colorBlue   = 36
	colorGray   = 37
)

const defaultTimestampFormat = "2006-01-02 15:04:05"

func colorByLevel(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return colorGray
	case logrus.WarnLevel:
		return colorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return colorRed
	default:
		return colorBlue
	}
}

// Formatter renders entries as
// "2006-01-02 15:04:05 [LEVEL] [file.go:12] message key=value".
type Formatter struct {
	DisableColor bool
	HideLogTime  bool
	// HideLogPath drops the caller file and line.
	HideLogPath     bool
	TimestampFormat string
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if !f.HideLogTime {
		b.WriteString(entry.Time.Format(timestampFormat))
		b.WriteByte(' ')
	}

	levelStr := strings.ToUpper(entry.Level.String())
	line := fmt.Sprintf("[%s] %s", levelStr, entry.Message)
	if !f.HideLogPath && entry.HasCaller() {
		line = fmt.Sprintf("[%s] [%s:%d] %s", levelStr, filepath.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	}
	line += formatFields(entry.Data)

	if f.DisableColor {
		b.WriteString(line)
	} else {
		fmt.Fprintf(b, "\033[%dm%s\033[0m", colorByLevel(entry.Level), line)
	}
	b.WriteByte('\n')

	return b.Bytes(), nil
}

func formatFields(data logrus.Fields) string {
	if len(data) == 0 {
		return ""
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, data[k])
	}
	return sb.String()
}
