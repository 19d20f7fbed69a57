package main

import (
	"github.com/celskeggs/vlauto/ctrl/chart/wave"
	"github.com/spf13/cobra"
	"log"
	"strings"
)

var (
	output    string
	module    string
	variables []string
)

var rootCmd = &cobra.Command{
	Use:   "plot <trace.vcd>",
	Short: "Render a value change dump as a waveform image.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := wave.Selection{Module: module}
		if cmd.Flags().Changed("vars") {
			sel.Variables = variables
		}
		if output == "" {
			output = strings.TrimSuffix(args[0], ".vcd") + "_waveform.png"
		}
		if err := wave.PlotVCD(args[0], output, sel); err != nil {
			return err
		}
		log.Printf("Waveform plot saved: %s", output)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output image (default: <trace>_waveform.png)")
	rootCmd.Flags().StringVarP(&module, "module", "m", wave.DefaultModule, "scope whose signals are plotted")
	rootCmd.Flags().StringSliceVar(&variables, "vars", nil, "signals to plot (default: all)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
