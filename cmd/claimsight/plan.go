package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/load"
	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run validation and stats for a claims file (no writes)",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.ClaimsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.ValidationError)
	}
	stat, err := os.Stat(cfg.ClaimsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.ValidationError)
	}

	start, _ := cfg.Start()
	table, err := load.Claims(cfg.ClaimsFile, start)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse claims file")
		os.Exit(exitcode.LoadError)
	}

	reps := make(map[string]struct{})
	drugs := make(map[string]struct{})
	count340B := 0
	paid := 0
	var minDate, maxDate string
	for i := range table.Claims {
		c := &table.Claims[i]
		reps[c.BizDevName] = struct{}{}
		drugs[c.DispensedDrug] = struct{}{}
		if c.InventoryType == model.Inventory340B {
			count340B++
		}
		if c.Filled() {
			paid++
		}
		d := c.Date.Format("2006-01-02")
		if minDate == "" || d < minDate {
			minDate = d
		}
		if d > maxDate {
			maxDate = d
		}
	}

	fmt.Println("=== claimsight plan ===")
	fmt.Printf("File:        %s\n", cfg.ClaimsFile)
	fmt.Printf("SHA-256:     %s\n", sha)
	fmt.Printf("Size:        %d bytes\n", stat.Size())
	fmt.Printf("Columns:     %d\n", len(table.Header))
	fmt.Printf("Claims:      %d (from %s)\n", len(table.Claims), cfg.StartDate)
	if len(table.Claims) > 0 {
		fmt.Printf("Date span:   %s to %s\n", minDate, maxDate)
	}
	fmt.Printf("340B claims: %d\n", count340B)
	fmt.Printf("Paid claims: %d\n", paid)
	fmt.Printf("Reps:        %d\n", len(reps))
	fmt.Printf("Drugs:       %d\n", len(drugs))
	fmt.Println("Parse validation: OK")
	return nil
}
