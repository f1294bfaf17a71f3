package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Format(t *testing.T) {
	f := &Formatter{DisableColor: true}
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "search finished",
		Data:    logrus.Fields{"found": true, "depth": 3},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 10:30:00 [WARNING] search finished depth=3 found=true\n", string(out))
}

func TestFormatter_CallerAndColor(t *testing.T) {
	f := &Formatter{HideLogTime: true}
	entry := &logrus.Entry{
		Logger:  &logrus.Logger{ReportCaller: true},
		Level:   logrus.ErrorLevel,
		Message: "boom",
		Caller:  &runtime.Frame{File: "/src/treesearch/search.go", Line: 42},
	}

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "\033[31m[ERROR] [search.go:42] boom\033[0m\n", string(out))
}

func TestInit_LogToFile(t *testing.T) {
	dir := t.TempDir()
	defer logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))

	require.NoError(t, Init(LogOptions{LogToFile: true, OutputDir: dir, Verbose: true}))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	logrus.Info("written to file")

	data, err := os.ReadFile(filepath.Join(dir, "treesearch.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
