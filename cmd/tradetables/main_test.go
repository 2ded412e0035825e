package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeBars(t *testing.T, dir string, n int) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("timestamp,open,high,low,close,volume\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := 100.0
	for i := 0; i < n; i++ {
		c := 100 + 10*math.Sin(float64(i)*2*math.Pi/40)
		high := math.Max(prev, c) + 0.5
		low := math.Min(prev, c) - 0.5
		fmt.Fprintf(&sb, "%s,%.4f,%.4f,%.4f,%.4f,1000\n", start.Add(time.Duration(i)*15*time.Minute).Format(time.RFC3339), prev, high, low, c)
		prev = c
	}
	path := filepath.Join(dir, "bars.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

func TestRender_YAMLAnalysis(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "sharpe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sharpe: 1.23\ndrawdown:\n  max: 0.15\n  len: 10\n"), 0o600))

	out, err := execute(t, "render", path, "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "### sharpe")
	assert.Contains(t, out, "| Performance | Value |")
	assert.Contains(t, out, "| drawdown - max | 0.15 |")
	assert.Contains(t, out, "| drawdown - len | 10 |")
}

func TestRender_NameFlag(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "a.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: 1\n"), 0o600))

	out, err := execute(t, "render", path, "--name", "Custom Title", "-o", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "# Custom Title")
	assert.Contains(t, out, "x,1")
}

func TestRender_BadFormat(t *testing.T) {
	chdirForTest(t, t.TempDir())
	_, err := execute(t, "render", "-", "-o", "pdf")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestBacktest_MultipleStrategiesGetLabelledTitles(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	bars := writeBars(t, dir, 240)

	out, err := execute(t, "backtest", "--bars", bars, "--strategy", "3:8", "--strategy", "5:12", "-o", "markdown")
	require.NoError(t, err)

	for _, label := range []string{
		"SMACross [fast: 3, slow: 8, atr: 14, atr_mult: 2]",
		"SMACross [fast: 5, slow: 12, atr: 14, atr_mult: 2]",
	} {
		assert.Contains(t, out, "### TradeAnalyzer ("+label+")")
		assert.Contains(t, out, "### DrawDown ("+label+")")
		assert.Contains(t, out, "### TradeList ("+label+")")
	}
}

func TestBacktest_SingleStrategyHasPlainTitles(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	bars := writeBars(t, dir, 120)

	out, err := execute(t, "backtest", "--bars", bars, "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, out, "### TradeAnalyzer\n")
	assert.Contains(t, out, "### SharpeRatio\n")
	assert.NotContains(t, out, "SMACross [")
}

func TestParseSMACross(t *testing.T) {
	s, err := parseSMACross("10:30")
	require.NoError(t, err)
	assert.Equal(t, 10, s.Fast)
	assert.Equal(t, 30, s.Slow)

	for _, bad := range []string{"10", "a:30", "10:b", "30:10", "0:5"} {
		_, err := parseSMACross(bad)
		assert.Error(t, err, bad)
	}
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
