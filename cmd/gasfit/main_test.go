package main

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gasmethod/timeSeries/gas"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 写一条确定性的价格序列
func writePrices(t *testing.T, dir, name string, n int, drift float64) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Close\n")
	p := 100.0
	d := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s,%.4f\n", d.Format("2006-01-02"), p)
		p *= 1 + drift + 0.01*math.Sin(float64(i)*1.7)
		d = d.AddDate(0, 0, 1)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &out
	err := cmd.Run(context.Background(), append([]string{"gasfit"}, args...))
	return out.String(), err
}

func TestGasfitFullRun(t *testing.T) {
	dir := t.TempDir()
	inst := writePrices(t, dir, "inst.csv", 60, 0.001)
	bench := writePrices(t, dir, "bench.csv", 60, 0.0005)

	out, err := runCmd(t, "--prices", inst, "--bench", bench, "--rows", "5")
	require.NoError(t, err)
	for _, title := range []string{"Baseline", "Adjustment", "Path", "Residuals"} {
		assert.Contains(t, out, title)
	}
	t.Log(out)
}

func TestGasfitBaselineOnly(t *testing.T) {
	dir := t.TempDir()
	inst := writePrices(t, dir, "inst.csv", 30, 0.001)

	out, err := runCmd(t, "--prices", inst, "--baseline-only")
	require.NoError(t, err)
	assert.Contains(t, out, "Baseline")
	assert.NotContains(t, out, "Adjustment")
}

func TestGasfitFailure(t *testing.T) {
	dir := t.TempDir()
	short := writePrices(t, dir, "short.csv", 2, 0.001)

	_, err := runCmd(t, "--prices", short)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "analysis failed: "))

	_, err = runCmd(t, "--prices", filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "analysis failed: "))

	_, err = runCmd(t, "--prices", short, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestRenderDiagnosticsSkipsDegenerate(t *testing.T) {
	d := gas.Diagnostics{
		Residuals:  []float64{1, 2, 3, 1e9},
		Degenerate: bitset.New(4).Set(3),
		ZMean:      2,
		ZStd:       1,
		ARLag:      gas.AR_LAG_NA,
	}
	var out bytes.Buffer
	renderDiagnostics(&out, d)
	assert.Contains(t, out.String(), "3.0000")
	assert.NotContains(t, out.String(), "1000000000")
	assert.Contains(t, out.String(), "n/a")
}
