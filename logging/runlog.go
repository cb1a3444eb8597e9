package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level identifies the severity tag of a run log line.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelSuccess Level = "SUCCESS"
	LevelError   Level = "ERROR"
)

var (
	successTag = color.New(color.FgGreen)
	errorTag   = color.New(color.FgRed)
)

// RunLog is the execution log for a test run. Every line goes to both the
// console and a plaintext log file as "[timestamp] [LEVEL] message". The
// file is a deliverable of the run, so it always gets plain text; only the
// console output is colored.
type RunLog struct {
	console io.Writer
	file    *os.File
	now     func() time.Time
	lock    sync.Mutex
}

// NewRunLog truncates (or creates) the log file at path and writes the run
// header line. Console output goes to console, typically os.Stdout.
func NewRunLog(path string, console io.Writer) (*RunLog, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create log file %s: %w", path, err)
	}
	l := &RunLog{
		console: console,
		file:    file,
		now:     time.Now,
	}
	if _, err := fmt.Fprintf(file, "--- API Test Log - %s ---\n\n", l.now().Format(timestampFormat)); err != nil {
		file.Close()
		return nil, fmt.Errorf("could not write log header: %w", err)
	}
	return l, nil
}

func (l *RunLog) Close() error {
	return l.file.Close()
}

// Record writes one leveled line to the console and the log file.
func (l *RunLog) Record(level Level, format string, args ...interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()

	timestamp := l.now().Format(timestampFormat)
	message := fmt.Sprintf(format, args...)

	fmt.Fprintf(l.file, "[%s] [%s] %s\n", timestamp, level, message)

	tag := fmt.Sprintf("[%s]", level)
	switch level {
	case LevelSuccess:
		tag = successTag.Sprintf("[%s]", level)
	case LevelError:
		tag = errorTag.Sprintf("[%s]", level)
	}
	fmt.Fprintf(l.console, "[%s] %s %s\n", timestamp, tag, message)
}

func (l *RunLog) Infof(format string, args ...interface{}) {
	l.Record(LevelInfo, format, args...)
}

func (l *RunLog) Successf(format string, args ...interface{}) {
	l.Record(LevelSuccess, format, args...)
}

func (l *RunLog) Errorf(format string, args ...interface{}) {
	l.Record(LevelError, format, args...)
}
