package report

import (
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"rsu-backtest/internal/backtest"
	"rsu-backtest/internal/strategy"
)

// WriteChartPNG renders the three portfolio-value series over the analysis
// window. Chart output is presentation only; a failed write is the caller's
// call to log, not abort on.
func WriteChartPNG(path string, res *backtest.Result) error {
	dates := make([]time.Time, len(res.Ledger))
	hold := make([]float64, len(res.Ledger))
	divestRSU := make([]float64, len(res.Ledger))
	divestCash := make([]float64, len(res.Ledger))
	for i, r := range res.Ledger {
		dates[i] = r.Date
		hold[i] = r.HoldValue
		divestRSU[i] = r.DivestRSUValue
		divestCash[i] = r.DivestCashValue
	}

	graph := chart.Chart{
		Title:  "Portfolio Values for Different Strategies Over Time",
		Width:  1200,
		Height: 800,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Portfolio Value ($)",
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: strategy.HoldName, XValues: dates, YValues: hold},
			chart.TimeSeries{Name: strategy.DivestRSUName, XValues: dates, YValues: divestRSU},
			chart.TimeSeries{Name: strategy.DivestCashName, XValues: dates, YValues: divestCash},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
