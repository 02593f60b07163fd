package cmd

import (
	"tokenbank/internal/interest"
	"tokenbank/pkg/number"

	"github.com/spf13/cobra"
)

// prints the borrow and supply apy of the rate model at each utilization step
var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "print the interest rate curve",
	RunE: func(cmd *cobra.Command, args []string) error {
		step, _ := cmd.Flags().GetUint64("step")
		if step == 0 || step > 100 {
			step = 10
		}

		reserveBps := cfg.Bank.ReserveBps
		if cmd.Flags().Changed("reserve") {
			reserveBps, _ = cmd.Flags().GetUint64("reserve")
		}

		model := interest.NewTripleSlope()

		cmd.Println("utilization\tborrow_apy\tsupply_apy")
		for u := uint64(0); u <= 100; u += step {
			debt, idle := number.New(u), number.New(100-u)
			rate, err := model.Rate(debt, idle)
			if err != nil {
				return err
			}

			utilization := interest.UtilizationRate(debt, idle)
			borrow := interest.AnnualRate(rate)
			supply := interest.SupplyRate(borrow, utilization, reserveBps)
			cmd.Printf("%s\t%s\t%s\n", utilization.StringFixed(2), borrow.StringFixed(4), supply.StringFixed(4))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(rateCmd)
	rateCmd.Flags().Uint64("step", 10, "utilization step in percent")
	rateCmd.Flags().Uint64("reserve", 0, "reserve factor in bps, defaults to the configured one")
}
