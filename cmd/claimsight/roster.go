package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/pipeline"
)

var rosterOpts struct {
	resolveNPIs bool
	outDir      string
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Physician roster coverage: who is writing, who is not",
	RunE:  runRoster,
}

func init() {
	f := rosterCmd.Flags()
	f.BoolVar(&rosterOpts.resolveNPIs, "npi", false, "Resolve practice locations from the NPI registry")
	f.StringVar(&rosterOpts.outDir, "out", "", "Directory for the coverage CSV export")
	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	log := newLogger()
	today := time.Now()

	if err := cfg.ValidateWithRoster(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	sess := authenticate(log)

	start, _ := cfg.Start()
	dateRange, _ := pipeline.ResolveRange(pipeline.RangeAll, today, start, time.Time{}, time.Time{})

	res, err := pipeline.Run(context.Background(), log, &cfg, sess.User, today, pipeline.Options{
		Range:       dateRange,
		WithRoster:  true,
		ResolveNPIs: rosterOpts.resolveNPIs,
		ExportDir:   rosterOpts.outDir,
	})
	if err != nil {
		exitPipeline(log, err)
	}

	active := 0
	for _, d := range res.Doctors {
		if d.Status == model.DoctorActive {
			active++
		}
	}

	fmt.Println("=== physician roster ===")
	fmt.Printf("Doctors:   %d (%d active, %d without scripts)\n",
		len(res.Doctors), active, len(res.Doctors)-active)

	fmt.Println("\nBy rep:")
	for _, r := range res.RepCoverage {
		fmt.Printf("  %-28s %3d doctors  %3d active  %4d scripts  $%12.2f\n",
			r.Rep, r.Doctors, r.Active, r.Scripts, r.Revenue)
	}

	fmt.Println("\nTop writers:")
	for i, d := range res.Doctors {
		if i == 10 || d.Scripts == 0 {
			break
		}
		loc := d.Location
		if loc == "" {
			loc = "-"
		}
		fmt.Printf("  %-32s %4d scripts  $%12.2f  %s\n", d.DoctorName, d.Scripts, d.Revenue, loc)
	}
	return nil
}
