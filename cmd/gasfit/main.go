// gasfit 读取价格文件, 估计收益序列的时变 (loc, scale) 路径并以表格输出
//
//	gasfit --prices spy.csv
//	gasfit --prices aapl.json --bench spy.json --config gas.yaml
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:            "gasfit",
		Usage:           "score-driven location/scale estimation of (excess) returns",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "prices", Aliases: []string{"p"}, Usage: "instrument price file (csv or json)", Required: true},
			&cli.StringFlag{Name: "bench", Aliases: []string{"b"}, Usage: "benchmark price file, excess returns are fitted when set"},
			&cli.StringFlag{Name: "format", Usage: "input format csv|json, inferred from extension when empty"},
			&cli.StringFlag{Name: "date-col", Value: "Date", Usage: "csv date column"},
			&cli.StringFlag{Name: "value-col", Value: "Close", Usage: "csv price column"},
			&cli.StringFlag{Name: "dates-path", Value: DEFAULT_DATES_PATH, Usage: "json path of the date array"},
			&cli.StringFlag{Name: "values-path", Value: DEFAULT_VALUES_PATH, Usage: "json path of the price array"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "yaml config file"},
			&cli.BoolFlag{Name: "debug", Usage: "debug logging"},
			&cli.BoolFlag{Name: "baseline-only", Usage: "only fit the static location/scale"},
			&cli.IntFlag{Name: "rows", Value: 20, Usage: "path rows to print from the tail, 0 prints all"},
		},
		Action: run,
	}
}
