package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/aggregate"
	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/load"
)

var infusionCmd = &cobra.Command{
	Use:   "infusion",
	Short: "Infusion program cash tracking with projections",
	RunE:  runInfusion,
}

func init() {
	f := infusionCmd.Flags()
	f.StringVar(&cfg.PaymentsFile, "payments", "", "Path to infusion payments workbook (xlsx)")
	f.Float64Var(&cfg.EstPaidPerInfusion, "est-paid", cfg.EstPaidPerInfusion, "Expected payment per unpaid infusion")
	rootCmd.AddCommand(infusionCmd)
}

func runInfusion(cmd *cobra.Command, args []string) error {
	log := newLogger()

	if err := cfg.ValidatePayments(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	authenticate(log)

	daily, err := load.Payments(cfg.PaymentsFile, cfg.ShareRate)
	if err != nil {
		log.Error().Err(err).Msg("load payments workbook")
		os.Exit(exitcode.LoadError)
	}
	if len(daily) == 0 {
		fmt.Println("No dated payment rows in the workbook.")
		return nil
	}

	p := aggregate.Project(daily, cfg.EstPaidPerInfusion)
	months := aggregate.MonthlyCash(daily)
	last := daily[len(daily)-1]

	fmt.Println("=== infusion program ===")
	fmt.Printf("Days tracked:        %d (through %s)\n", len(daily), last.Date.Format("2006-01-02"))
	fmt.Printf("Cash collected:      $%.2f\n", p.CashActual)
	fmt.Printf("Projected w/ unpaid: $%.2f\n", p.CashProjected)
	fmt.Printf("Infusions:           %.0f total, %.0f on paid days\n", p.TotalInfusions, p.PaidInfusions)
	fmt.Printf("Revenue/infusion:    $%.2f\n", p.RevPerInfusion)
	fmt.Printf("Earned share (%.0f%%): $%.2f\n", cfg.ShareRate*100, last.EarnedShare)

	fmt.Println("\nMonthly cash:")
	for _, m := range months {
		fmt.Printf("  %s  $%12.2f\n", m.Month, m.Cash)
	}
	return nil
}
