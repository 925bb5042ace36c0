package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gasmethod/infra/observe/log/staticLog"
	"gasmethod/quant/returns"
	"gasmethod/timeSeries/gas"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	DEFAULT_DATES_PATH  = "chart.result.0.timestamp"
	DEFAULT_VALUES_PATH = "chart.result.0.indicators.quote.0.close"
)

type loadSpec struct {
	format     string
	dateCol    string
	valueCol   string
	datesPath  string
	valuesPath string
}

func (l loadSpec) load(path string) (returns.Series, error) {
	format := strings.ToLower(l.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "csv":
		return returns.LoadCSV(path, l.dateCol, l.valueCol)
	case "json":
		return returns.LoadJSON(path, l.datesPath, l.valuesPath)
	default:
		return returns.Series{}, fmt.Errorf("unsupported format %q for %s", format, path)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if p := cmd.String("config"); p != "" {
		if err := gas.Init(p); err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
	}
	cfg := gas.Current()
	if err := staticLog.Init(cfg.Log); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	if cmd.Bool("debug") {
		staticLog.SetLevel(logrus.DebugLevel)
	}

	ls := loadSpec{
		format:     cmd.String("format"),
		dateCol:    cmd.String("date-col"),
		valueCol:   cmd.String("value-col"),
		datesPath:  cmd.String("dates-path"),
		valuesPath: cmd.String("values-path"),
	}
	series, err := loadReturns(ls, cmd.String("prices"), cmd.String("bench"))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	staticLog.Log.Infof("gasfit: %d returns from %s to %s", series.Len(),
		series.Dates[0].Format("2006-01-02"), series.Dates[series.Len()-1].Format("2006-01-02"))

	w := cmd.Root().Writer
	if cmd.Bool("baseline-only") {
		base, err := gas.EstimateBaseline(series.Values, cfg.Options()...)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		renderBaseline(w, base)
		return nil
	}

	res, err := gas.GasModel(series.Values, cfg.Options()...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	renderBaseline(w, res.Baseline)
	renderAdjustment(w, res.Adjustment)
	renderPath(w, series, res.Path, int(cmd.Int("rows")))
	renderDiagnostics(w, res.Diagnostics)
	return nil
}

// 有基准时拟合超额收益, 否则拟合标的收益
func loadReturns(ls loadSpec, pricesPath, benchPath string) (returns.Series, error) {
	inst, err := ls.load(pricesPath)
	if err != nil {
		return returns.Series{}, err
	}
	if benchPath == "" {
		r := inst.Returns()
		if r.Len() < gas.MIN_SERIES_LEN {
			return returns.Series{}, fmt.Errorf("only %d returns in %s", r.Len(), pricesPath)
		}
		return r, nil
	}
	bench, err := ls.load(benchPath)
	if err != nil {
		return returns.Series{}, err
	}
	ex, err := returns.ExcessReturns(inst, bench)
	if err != nil {
		return returns.Series{}, err
	}
	if ex.Len() < gas.MIN_SERIES_LEN {
		return returns.Series{}, fmt.Errorf("only %d excess returns after alignment", ex.Len())
	}
	return ex, nil
}
