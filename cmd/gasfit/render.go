package main

import (
	"fmt"
	"io"

	"gasmethod/pkg/utils/myTools"
	"gasmethod/quant/returns"
	"gasmethod/timeSeries/gas"

	"github.com/jedib0t/go-pretty/v6/table"
)

func f4(v float64) string { return fmt.Sprintf("%.4f", v) }
func f6(v float64) string { return fmt.Sprintf("%.6f", v) }

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func renderBaseline(w io.Writer, b gas.BaselineResult) {
	t := newTable(w, "Baseline")
	t.AppendHeader(table.Row{"loc", "scale", "loglik", "status", "iter", "evals"})
	t.AppendRow(table.Row{f6(b.Loc), f6(b.Scale), f4(b.LogLik), b.Status, b.Iterations, b.FuncEvals})
	t.Render()
}

func renderAdjustment(w io.Writer, a gas.AdjustmentResult) {
	t := newTable(w, "Adjustment")
	t.AppendHeader(table.Row{"adj loc", "adj scale", "loglik", "status", "iter", "evals"})
	t.AppendRow(table.Row{f6(a.Loc), f6(a.Scale), f4(a.LogLik), a.Status, a.Iterations, a.FuncEvals})
	t.Render()
}

// path[k] 对应 series[k+1]
func renderPath(w io.Writer, series returns.Series, path gas.ParamPath, rows int) {
	t := newTable(w, "Path")
	t.AppendHeader(table.Row{"date", "return", "loc", "scale"})
	start := 0
	if rows > 0 && rows < len(path) {
		start = len(path) - rows
	}
	for k := start; k < len(path); k++ {
		t.AppendRow(table.Row{
			series.Dates[k+1].Format("2006-01-02"),
			f6(series.Values[k+1]),
			f6(path[k].Loc),
			f6(path[k].Scale),
		})
	}
	t.Render()
}

func renderDiagnostics(w io.Writer, d gas.Diagnostics) {
	z := d.ValidResiduals()
	arLag := "n/a"
	if d.ARLag != gas.AR_LAG_NA {
		arLag = fmt.Sprint(d.ARLag)
	}
	t := newTable(w, "Residuals")
	t.AppendHeader(table.Row{"z mean", "z std", "z p05", "z p50", "z p95", "degenerate", "Q", "p-value", "AR lag"})
	t.AppendRow(table.Row{
		f4(d.ZMean), f4(d.ZStd),
		f4(myTools.Quantile(z, 0.05)),
		f4(myTools.Quantile(z, 0.5)),
		f4(myTools.Quantile(z, 0.95)),
		d.Degenerate.Count(),
		f4(d.LjungBox.Q), f4(d.LjungBox.PValue),
		arLag,
	})
	t.Render()

	if d.Stationary == nil {
		return
	}
	s := newTable(w, "ADF")
	s.AppendHeader(table.Row{"t-stat", "5% critical", "lag", "nobs", "stationary"})
	s.AppendRow(table.Row{f4(d.Stationary.TStat), d.Stationary.Criticals["5%"], d.Stationary.UsedLag, d.Stationary.NObs, d.Stationary.Reject("5%")})
	s.Render()
}
