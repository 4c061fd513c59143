package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/aggregate"
	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/normalize"
	"github.com/hudsonrx/claimsight/internal/pipeline"
)

var reportOpts struct {
	rangePreset string
	from        string
	to          string
	rep         string
	noPotential bool
	outDir      string
	workbook    bool
	withRoster  bool
	resolveNPIs bool
	topN        int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the revenue report for one user",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVar(&reportOpts.rangePreset, "range", pipeline.RangeAll,
		`Date range preset: "Last 7 Days", "Last 30 Days", "Last Quarter", "Last Year", "All", or "Custom"`)
	f.StringVar(&reportOpts.from, "from", "", "Custom range start (YYYY-MM-DD)")
	f.StringVar(&reportOpts.to, "to", "", "Custom range end (YYYY-MM-DD)")
	f.StringVar(&reportOpts.rep, "rep", "All", "Narrow to one biz dev rep (exact name)")
	f.BoolVar(&reportOpts.noPotential, "no-potential", false, "Count collected cash only, excluding recoverable revenue")
	f.StringVar(&reportOpts.outDir, "out", "", "Directory for CSV exports (omit to skip exports)")
	f.BoolVar(&reportOpts.workbook, "workbook", false, "Also write the consolidated xlsx workbook")
	f.BoolVar(&reportOpts.withRoster, "with-roster", false, "Include the physician coverage view (needs --roster)")
	f.BoolVar(&reportOpts.resolveNPIs, "npi", false, "Resolve roster practice locations from the NPI registry")
	f.IntVar(&reportOpts.topN, "top", 10, "Rows to show per summary table")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx := context.Background()
	today := time.Now()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	if reportOpts.withRoster {
		if err := cfg.ValidateWithRoster(); err != nil {
			log.Error().Err(err).Msg("config validation failed")
			os.Exit(exitcode.UsageError)
		}
	}
	sess := authenticate(log)

	if reportOpts.outDir == "" {
		reportOpts.outDir = cfg.OutputDir
	}

	start, _ := cfg.Start()
	var from, to time.Time
	if reportOpts.from != "" {
		var ok bool
		if from, ok = normalize.ParseDate(reportOpts.from); !ok {
			log.Error().Str("from", reportOpts.from).Msg("unparseable --from date")
			os.Exit(exitcode.UsageError)
		}
	}
	if reportOpts.to != "" {
		var ok bool
		if to, ok = normalize.ParseDate(reportOpts.to); !ok {
			log.Error().Str("to", reportOpts.to).Msg("unparseable --to date")
			os.Exit(exitcode.UsageError)
		}
	}
	dateRange, err := pipeline.ResolveRange(reportOpts.rangePreset, today, start, from, to)
	if err != nil {
		log.Error().Err(err).Msg("invalid date range")
		os.Exit(exitcode.UsageError)
	}

	res, err := pipeline.Run(ctx, log, &cfg, sess.User, today, pipeline.Options{
		Range:            dateRange,
		Rep:              reportOpts.rep,
		ExcludePotential: reportOpts.noPotential,
		WithRoster:       reportOpts.withRoster,
		ResolveNPIs:      reportOpts.resolveNPIs,
		ExportDir:        reportOpts.outDir,
		Workbook:         reportOpts.workbook,
	})
	if err != nil {
		exitPipeline(log, err)
	}

	if res.Empty {
		fmt.Println("No claims in the selected range for your scope.")
		return nil
	}

	fmt.Printf("=== claimsight report (%s) ===\n", dateRange.Label())
	fmt.Printf("User:              %s (%s)\n", sess.User.Email, sess.User.Role)
	fmt.Printf("Claims in range:   %d\n", res.Summary.ClaimsInRange)
	fmt.Printf("340B actual:       $%.2f\n", res.KPIs.Actual340B)
	fmt.Printf("340B potential:    $%.2f\n", res.KPIs.Potential340B)
	fmt.Printf("Unable to fill:    $%.2f (%d scripts)\n", res.KPIs.UnableToFillWAC, res.KPIs.UnableToFillNum)
	fmt.Printf("Fill rate:         %.1f%%\n", res.KPIs.FillRatePercent)
	fmt.Printf("Open unfilled:     %d\n", res.Summary.UnfilledOpen)

	printGroups("By biz dev", res.ByRep)
	printGroups("By medication", res.ByDrug)
	printGroups("By physician", res.ByPhysician)

	if len(res.Monthly340B) > 0 {
		fmt.Println("\n340B revenue by month:")
		for _, m := range res.Monthly340B {
			fmt.Printf("  %s  %4d scripts  $%12.2f\n", m.Key, m.Scripts, m.Actual)
		}
	}
	if n := len(res.Daily); n > 0 {
		last := res.Daily[n-1]
		fmt.Printf("\nCumulative through %s: $%.2f actual, $%.2f potential\n",
			last.Date.Format("2006-01-02"), last.CumulativeActual, last.CumulativePotential)
	}

	if len(res.Summary.ExportsOut) > 0 {
		fmt.Println("\nExports:")
		for _, p := range res.Summary.ExportsOut {
			fmt.Printf("  %s\n", p)
		}
	}
	fmt.Printf("\nDone in %.1fs\n", res.Summary.DurationTotal.Seconds())
	return nil
}

func printGroups(title string, groups []aggregate.Group) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, g := range aggregate.TopN(groups, reportOpts.topN) {
		fmt.Printf("  %-32s %4d scripts  $%12.2f total  %5.1f%% filled\n",
			g.Key, g.Scripts, g.Total, g.FillRate)
	}
}

// exitPipeline maps a pipeline failure phase to the process exit code.
func exitPipeline(log zerolog.Logger, err error) {
	var pe *pipeline.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("report failed")
		switch pe.Phase {
		case "load":
			os.Exit(exitcode.LoadError)
		case "export":
			os.Exit(exitcode.ExportError)
		default:
			os.Exit(exitcode.ComputeError)
		}
	}
	log.Error().Err(err).Msg("report failed")
	os.Exit(exitcode.ComputeError)
}
