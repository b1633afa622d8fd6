package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateExample(t *testing.T) {
	out, err := run(t, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "主食")
	assert.Contains(t, out, "instead of 27 exhaustive")
}

func TestGenerateCSVFromModelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
factors:
  - name: OS
    values: [Linux, macOS]
  - name: Browser
    values: [Firefox, Chrome]
`), 0o644))

	out, err := run(t, "generate", path, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "No,OS,Browser\n")
	assert.Contains(t, out, "1,Linux,Firefox\n")
}

func TestGenerateUnknownFormat(t *testing.T) {
	_, err := run(t, "generate", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCoverage(t *testing.T) {
	out, err := run(t, "coverage")
	require.NoError(t, err)
	assert.Contains(t, out, "主食 × 副食")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "3 pairs")
}

func TestCoverageFlagsDuplicateValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
factors:
  - name: os
    values: [linux, linux]
  - name: arch
    values: [amd64, arm64]
  - name: mode
    values: [fast, safe]
`), 0o644))

	out, err := run(t, "coverage", path)
	require.NoError(t, err)
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "duplicate values")
	assert.NotContains(t, out, "0 missing")
}

func TestReportWritesWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := run(t, "--locale", "ja", "report", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "サマリー", f.GetSheetList()[5])
}

func TestReportBatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("X,Y\nx1,y1\nx2,y2\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("P,Q,R\np1,q1,r1\np2,q2,r2\n"), 0o644))
	outDir := filepath.Join(dir, "reports")

	_, err := run(t, "report", a, b, "--out-dir", outDir)
	require.NoError(t, err)

	for _, name := range []string{"a.xlsx", "b.xlsx"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err)
	}
}

func TestPreviewMarkdown(t *testing.T) {
	out, err := run(t, "preview")
	require.NoError(t, err)
	assert.Contains(t, out, "## Pairwise Test Cases")

	out, err = run(t, "preview", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestExample(t *testing.T) {
	out, err := run(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "factors:")
	assert.Contains(t, out, "デザート")
}
