package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/pipeline"
)

var unfilledOpts struct {
	outDir string
}

var unfilledCmd = &cobra.Command{
	Use:   "unfilled",
	Short: "Show the open unfilled-script worklist",
	RunE:  runUnfilled,
}

func init() {
	unfilledCmd.Flags().StringVar(&unfilledOpts.outDir, "out", "", "Directory for the worklist CSV export")
	rootCmd.AddCommand(unfilledCmd)
}

func runUnfilled(cmd *cobra.Command, args []string) error {
	log := newLogger()
	today := time.Now()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	sess := authenticate(log)

	start, _ := cfg.Start()
	dateRange, _ := pipeline.ResolveRange(pipeline.RangeAll, today, start, time.Time{}, time.Time{})

	res, err := pipeline.Run(context.Background(), log, &cfg, sess.User, today, pipeline.Options{
		Range:     dateRange,
		ExportDir: unfilledOpts.outDir,
	})
	if err != nil {
		exitPipeline(log, err)
	}

	r := res.Unfilled
	if r.TotalUnfilled == 0 {
		fmt.Println("No open unfilled scripts in the recovery window.")
		return nil
	}

	fmt.Println("=== unfilled scripts (last 30 days) ===")
	fmt.Printf("Open scripts:        %d ($%.2f WAC at risk)\n", r.TotalUnfilled, r.TotalWAC)
	fmt.Printf("Actionable now:      %d ($%.2f)\n", r.ActionableCount, r.ActionableWAC)
	fmt.Printf("Patients affected:   %d\n", r.UniquePatients)
	fmt.Printf("Prescribers:         %d\n", r.UniquePrescribers)
	if r.TransferMessageCount > 0 {
		fmt.Printf("Out-of-network rejects: %d ($%.2f)\n", r.TransferMessageCount, r.TransferMessageWAC)
	}

	fmt.Println("\nBy bucket:")
	for _, b := range r.ByBucket() {
		fmt.Printf("  %-36s %4d scripts  $%12.2f\n", b.Bucket, b.Scripts, b.WAC)
	}

	fmt.Println("\nActionable priorities:")
	for _, g := range r.Actionable() {
		fmt.Printf("  %s (%d scripts, $%.2f)\n", g.Priority, len(g.Rows), g.WAC)
		fmt.Printf("    Action: %s\n", g.Guidance)
	}

	if len(res.Summary.ExportsOut) > 0 {
		fmt.Println("\nExports:")
		for _, p := range res.Summary.ExportsOut {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
