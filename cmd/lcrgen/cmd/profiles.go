package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synthbank/lcrgen/reference"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the built-in calibration profiles",
	Long: `Profiles shows every built-in calibration of the reference weight tables
with its documented LCR band and deposit mix. The --target-lcr flag of
generate selects among these; --profile-file replaces them entirely.`,
	Run: runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, args []string) {
	for _, p := range reference.Profiles() {
		fmt.Printf("%s: %s\n", p.Name, p.Description)
		fmt.Printf("  Documented band: %.0f-%.0f%%\n", p.BandLow, p.BandHigh)
		fmt.Printf("  HQLA mix:\n")
		for _, a := range p.Tables.Assets {
			fmt.Printf("    %-26s %5.1f%%  %-3s haircut %.2f\n", a.Code, a.Weight*100, a.Level, a.Haircut)
		}
		fmt.Printf("  Deposit mix:\n")
		for _, d := range p.Tables.Deposits {
			fmt.Printf("    %-26s %5.1f%%  run-off %.0f%%\n", d.Code, d.Weight*100, d.RunOffRate*100)
		}
		fmt.Println()
	}
}
