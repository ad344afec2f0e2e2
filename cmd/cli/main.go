package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"rsu-backtest/internal/analysis"
	"rsu-backtest/internal/backtest"
	"rsu-backtest/internal/config"
	"rsu-backtest/internal/data"
	"rsu-backtest/internal/grant"
	"rsu-backtest/internal/model"
	"rsu-backtest/internal/report"
	"rsu-backtest/internal/vesting"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "analyze":
		cmdAnalyze(os.Args[2:])
	case "vested":
		cmdVested(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli analyze --settings user_settings.yaml [--out-csv results.csv] [--out-png results.png]")
	fmt.Println("  cli vested --settings user_settings.yaml --date 2025-03-05 [--cash]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - analyze compares Hold / Divest / Cash strategies over the full vesting history")
	fmt.Println("  - vested answers how many shares (or dollars with --cash) vest on a single date")
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func cmdAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	settingsPath := fs.String("settings", "user_settings.yaml", "Path to YAML settings")
	outCSV := fs.String("out-csv", "", "Output CSV path (default from settings)")
	outPNG := fs.String("out-png", "", "Output chart PNG path (default from settings)")
	verbose := fs.Bool("v", false, "Verbose logging")
	_ = fs.Parse(args)

	log := newLogger()
	if !*verbose {
		log = log.Level(zerolog.InfoLevel)
	}

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}
	if *outCSV == "" {
		*outCSV = settings.OutCSV
	}
	if *outPNG == "" {
		*outPNG = settings.OutPNG
	}

	ledger, prices, err := buildLedger(settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve grants")
	}

	engine := backtest.New(prices)
	res, err := engine.Run(ledger, settings.Stock, settings.Market, time.Now().UTC())
	if err != nil {
		log.Fatal().Err(err).Msg("run analysis")
	}

	// Output writes are presentation only; a failed write must not discard
	// the computed result.
	if dir := filepath.Dir(*outCSV); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Warn().Err(err).Str("path", *outCSV).Msg("unable to create output directory")
		}
	}
	if err := backtest.WriteLedgerCSV(*outCSV, res); err != nil {
		log.Warn().Err(err).Str("path", *outCSV).Msg("unable to write CSV")
	} else {
		log.Info().Int("rows", len(res.Ledger)).Str("path", *outCSV).Msg("wrote ledger CSV")
	}
	if err := report.WriteChartPNG(*outPNG, res); err != nil {
		log.Warn().Err(err).Str("path", *outPNG).Msg("unable to write chart")
	} else {
		log.Info().Str("path", *outPNG).Msg("wrote chart PNG")
	}

	report.WriteSummaryTable(os.Stdout, res, analysis.Summarize(res))
}

func cmdVested(args []string) {
	fs := flag.NewFlagSet("vested", flag.ExitOnError)
	settingsPath := fs.String("settings", "user_settings.yaml", "Path to YAML settings")
	dateStr := fs.String("date", "", "Query date (YYYY-MM-DD)")
	asCash := fs.Bool("cash", false, "Report the cash value instead of shares")
	_ = fs.Parse(args)

	log := newLogger()

	if *dateStr == "" {
		fmt.Println("--date is required")
		os.Exit(2)
	}
	d, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid --date, use YYYY-MM-DD")
	}
	query := model.Day(d.Year(), d.Month(), d.Day())

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load settings")
	}

	ledger, _, err := buildLedger(settings, log)
	if err != nil {
		log.Fatal().Err(err).Msg("resolve grants")
	}

	amount := ledger.VestedOn(query, *asCash)
	if *asCash {
		fmt.Printf("%s: $%.2f vested (cash award, post-withholding)\n", *dateStr, amount)
	} else {
		fmt.Printf("%s: %.2f %s shares vested (post-withholding)\n", *dateStr, amount, settings.Stock)
	}
}

// buildLedger wires the price source (network or fixture, always behind the
// cache) and resolves every configured grant.
func buildLedger(settings *config.Settings, log zerolog.Logger) (*vesting.Ledger, data.PriceSource, error) {
	var src data.PriceSource
	if settings.PricesFile != "" {
		fixture, err := data.LoadPriceFixture(settings.PricesFile)
		if err != nil {
			return nil, nil, err
		}
		src = fixture
	} else {
		src = data.NewYahooClient("", log)
	}
	prices := data.NewCache(src)

	sched := settings.Schedule()
	resolver := grant.Resolver{Schedule: sched, Ticker: settings.Stock, Prices: prices}
	grants, err := resolver.ResolveAll(settings.Grants)
	if err != nil {
		return nil, nil, err
	}
	return vesting.NewLedger(sched, grants, settings.WorkEnd()), prices, nil
}
