package main

import (
	"github.com/celskeggs/vlauto/ctrl/automation"
	"github.com/celskeggs/vlauto/ctrl/report"
	"github.com/spf13/cobra"
	"os"
)

var (
	workspace string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "vlauto <config.json>",
	Short: "Compile, simulate and plot the Verilog sources of an assignment.",
	Long: `vlauto compiles every source listed in the configuration with iverilog, ` +
		`runs it with vvp, captures the simulator output with termshot when available ` +
		`and renders the dumped waveform into the assignment's imgs/ folder.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := report.New(cmd.OutOrStdout(), verbose)
		a, err := automation.New(args[0], workspace, automation.Options{
			Verbose:  verbose,
			Reporter: out,
		})
		if err != nil {
			return err
		}
		if summary := a.Run(); !summary.OK() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace root directory (default: current directory)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		report.New(os.Stderr, verbose).Error("%v", err)
		os.Exit(1)
	}
}
