package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/clingy"

	"loov.dev/tracestats/category"
	"loov.dev/tracestats/stats"
)

const sampleTrace = `{"traceEvents": [
  {"name": "TracingStartedInBrowser", "cat": "disabled-by-default-devtools.timeline", "ph": "I", "pid": 1, "tid": 1, "ts": 0, "s": "t"},
  {"name": "TracingStartedInFrame", "cat": "disabled-by-default-devtools.timeline", "ph": "I", "pid": 2, "tid": 3, "ts": 0, "s": "t", "args": {"data": {"frame": "F"}}},
  {"name": "RunTask", "cat": "disabled-by-default-devtools.timeline,toplevel", "ph": "X", "pid": 2, "tid": 3, "ts": 1000, "dur": 4000, "args": {"data": {"frame": "F"}}},
  {"name": "UpdateLayoutTree", "cat": "disabled-by-default-devtools.timeline,toplevel", "ph": "X", "pid": 2, "tid": 3, "ts": 2000, "dur": 1000},
  {"name": "Screenshot", "cat": "disabled-by-default-devtools.screenshot", "ph": "O", "pid": 2, "tid": 3, "ts": 10000}
]}`

func writeTrace(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyze(t *testing.T) {
	result, err := analyze(writeTrace(t, sampleTrace))
	require.NoError(t, err)

	assert.Equal(t, stats.Statistics{
		category.Other:     3,
		category.Rendering: 1,
		category.Busy:      4,
		category.Idle:      6,
	}, result)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := analyze(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = analyze(writeTrace(t, "{"))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	result := stats.Statistics{category.Scripting: 1.5, category.Busy: 1.5, category.Idle: 0}

	var single bytes.Buffer
	require.NoError(t, writeJSON(&single, []string{"a.json"}, []stats.Statistics{result}))
	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(single.Bytes(), &decoded))
	assert.Equal(t, map[string]float64{"scripting": 1.5, "busy": 1.5, "idle": 0}, decoded)

	var multi bytes.Buffer
	paths := []string{"b.json", "a.json", "b.json"}
	require.NoError(t, writeJSON(&multi, paths, []stats.Statistics{result, {}, result}))
	var entries []struct {
		Trace      string             `json:"trace"`
		Statistics map[string]float64 `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal(multi.Bytes(), &entries))
	require.Len(t, entries, 3)
	// argument order and repeated paths are kept
	for i, entry := range entries {
		assert.Equal(t, paths[i], entry.Trace)
	}
	assert.Equal(t, 1.5, entries[0].Statistics["scripting"])
	assert.Empty(t, entries[1].Statistics)
	assert.Equal(t, entries[0].Statistics, entries[2].Statistics)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, []string{"a.json", "b.json"}, []stats.Statistics{
		{category.Painting: 1234.5, category.Busy: 1234.5, category.Idle: 10},
		{},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a.json")
	assert.Contains(t, out, "1,234.50 ms")
	assert.Contains(t, out, "no main thread tasks")
	// labels are printed in table order
	assert.Less(t, strings.Index(out, "painting"), strings.Index(out, "idle"))
	assert.Less(t, strings.Index(out, "idle"), strings.Index(out, "busy"))
}

func TestParsePositive(t *testing.T) {
	n, err := parsePositive("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = parsePositive("0")
	assert.Error(t, err)
	_, err = parsePositive("x")
	assert.Error(t, err)
}

func run(t *testing.T, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	ok, err := clingy.Environment{
		Name:   "tracestats",
		Args:   args,
		Stdout: &stdout,
		Stderr: &stderr,
	}.Run(context.Background(), commands)
	if err == nil {
		require.True(t, ok, stderr.String())
	}
	return stdout.String(), err
}

func TestStatsCommand(t *testing.T) {
	path := writeTrace(t, sampleTrace)

	out, err := run(t, "stats", "--format", "table", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "3.00 ms")
	assert.Contains(t, out, "rendering")
	assert.Less(t, strings.Index(out, "other"), strings.Index(out, "idle"))

	out, err = run(t, "stats", "--parallel", "1", path, path)
	require.NoError(t, err)
	var entries []struct {
		Trace      string             `json:"trace"`
		Statistics map[string]float64 `json:"statistics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 4.0, entries[1].Statistics["busy"])
	assert.Equal(t, 6.0, entries[1].Statistics["idle"])

	_, err = run(t, "stats", "--format", "xml", path)
	assert.Error(t, err)

	_, err = run(t, "stats")
	assert.Error(t, err)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := run(t, "categories", "--labels")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(category.Labels))
	for i, label := range category.Labels {
		assert.Equal(t, string(label), lines[i])
	}

	out, err = run(t, "categories")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(stats.TraceCategories, ",")+"\n", out)
}
