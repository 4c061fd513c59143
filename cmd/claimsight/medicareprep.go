package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hudsonrx/claimsight/internal/exitcode"
	"github.com/hudsonrx/claimsight/internal/medicare"
)

var medicareOpts struct {
	in     string
	out    string
	verify bool
}

var medicarePrepCmd = &cobra.Command{
	Use:   "medicare-prep",
	Short: "Convert the CMS Medicare Part D CSV to Parquet with derived cost columns",
	RunE:  runMedicarePrep,
}

func init() {
	f := medicarePrepCmd.Flags()
	f.StringVar(&medicareOpts.in, "in", "", "Path to the raw Medicare Part D CSV (required)")
	f.StringVar(&medicareOpts.out, "out", "medicare.parquet", "Output Parquet path")
	f.BoolVar(&medicareOpts.verify, "verify", false, "Re-read the output and check the derived columns")
	_ = medicarePrepCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(medicarePrepCmd)
}

func runMedicarePrep(cmd *cobra.Command, args []string) error {
	log := newLogger()

	summary, err := medicare.Prepare(medicareOpts.in, medicareOpts.out, log)
	if err != nil {
		log.Error().Err(err).Msg("medicare prep failed")
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Medicare prep complete: %d rows in, %d rows out, %d dropped, wrote %s\n",
		summary.RowsIn, summary.RowsOut, summary.RowsDropped, medicareOpts.out)

	if medicareOpts.verify {
		v, err := medicare.Verify(medicareOpts.out)
		if err != nil {
			log.Error().Err(err).Msg("medicare verify failed")
			os.Exit(exitcode.ValidationError)
		}
		fmt.Printf("Verify: %d rows read back, %d null cost/claim, %d null cost/beneficiary\n",
			v.Rows, v.NullCostPerClm, v.NullCostPerBene)
	}
	return nil
}
