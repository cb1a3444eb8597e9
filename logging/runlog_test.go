package logging

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logLinePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[(INFO|SUCCESS|ERROR)\] `)

func TestRunLogWritesHeaderAndLeveledLines(t *testing.T) {
	color.NoColor = true

	path := filepath.Join(t.TempDir(), "test_results.log")
	var console bytes.Buffer

	log, err := NewRunLog(path, &console)
	require.NoError(t, err)

	log.Infof("Starting API tests against: %s", "https://example.com")
	log.Successf("  PASS: Status code matches for '%s'", "case 1")
	log.Errorf("  FAIL: Status code MISMATCH for '%s'", "case 2")
	require.NoError(t, log.Close())

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5) // header, blank, three entries

	assert.True(t, strings.HasPrefix(lines[0], "--- API Test Log - "))
	assert.Equal(t, "", lines[1])
	for _, line := range lines[2:] {
		assert.Regexp(t, logLinePattern, line)
	}
	assert.Contains(t, lines[2], "[INFO] Starting API tests against: https://example.com")
	assert.Contains(t, lines[3], "[SUCCESS]   PASS: Status code matches for 'case 1'")
	assert.Contains(t, lines[4], "[ERROR]   FAIL: Status code MISMATCH for 'case 2'")

	// console gets the same three entries (no header)
	consoleLines := strings.Split(strings.TrimRight(console.String(), "\n"), "\n")
	require.Len(t, consoleLines, 3)
	for _, line := range consoleLines {
		assert.Regexp(t, logLinePattern, line)
	}
}

func TestRunLogTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test_results.log")
	require.NoError(t, ioutil.WriteFile(path, []byte("stale content\n"), 0644))

	log, err := NewRunLog(path, ioutil.Discard)
	require.NoError(t, err)
	require.NoError(t, log.Close())

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale content")
}

func TestCapturingLogger(t *testing.T) {
	var logger CapturingLogger
	logger.Printf("first %d", 1)
	logger.Printf("second %d", 2)

	output := logger.Output()
	require.Len(t, output, 2)
	assert.Equal(t, "first 1", output[0].Message)
	assert.Equal(t, "second 2", output[1].Message)

	var buf bytes.Buffer
	output.Dump(&buf, "  DEBUG ")
	dumped := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, dumped, 2)
	assert.True(t, strings.HasPrefix(dumped[0], "  DEBUG ["))
	assert.True(t, strings.HasSuffix(dumped[0], "first 1"))
}
