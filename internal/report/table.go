package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"rsu-backtest/internal/analysis"
	"rsu-backtest/internal/backtest"
)

// WriteSummaryTable prints the strategy comparison as a grid table, headed
// by the latest price the comparison is based on.
func WriteSummaryTable(w io.Writer, res *backtest.Result, summaries []analysis.StrategySummary) {
	final := res.Final()
	fmt.Fprintf(w, "Analysis results based on latest available price for $%s (%s):\n\n",
		res.Stock, formatUSD(final.StockClose))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strategy", "Portfolio Value", "Difference"})
	table.SetAutoFormatHeaders(false)

	for i, s := range summaries {
		diff := "-"
		if i > 0 {
			diff = formatUSD(s.DiffVsHold)
		}
		table.Append([]string{s.Name, formatUSD(s.EndingValue), diff})
	}
	table.Render()
}

// formatUSD renders a dollar amount with thousands separators, e.g.
// -1234567.8 -> "-$1,234,567.80".
func formatUSD(x float64) string {
	sign := ""
	if x < 0 {
		sign = "-"
		x = -x
	}
	s := strconv.FormatFloat(math.Round(x*100)/100, 'f', 2, 64)
	dot := strings.Index(s, ".")
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return sign + "$" + b.String() + frac
}
