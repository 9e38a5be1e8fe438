package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"turndown/internal/api"
)

func newInventoryCommand(ctx *commandContext) *cobra.Command {
	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "Inventory utilities",
	}

	inventoryCmd.AddCommand(newVarianceCommand(ctx))
	return inventoryCmd
}

func newVarianceCommand(ctx *commandContext) *cobra.Command {
	var shortagesOnly bool

	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Compare counted stock against the full-house requirement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			report, err := api.InventoryVariance(cmd.Context(), api.InventoryVarianceRequest{
				Config: cfg,
				Logger: ctx.commandLogger(),
			})
			if err != nil {
				return err
			}
			if shortagesOnly {
				lines := report.Lines[:0]
				for _, line := range report.Lines {
					if line.Variance < 0 {
						lines = append(lines, line)
					}
				}
				report.Lines = lines
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, report)
			}

			out := cmd.OutOrStdout()
			printSessionNotices(out, report.Session)
			if len(report.Lines) == 0 {
				fmt.Fprintln(out, "No inventory lines to report.")
				return nil
			}

			rows := make([][]string, 0, len(report.Lines))
			for _, line := range report.Lines {
				rows = append(rows, []string{
					line.Name,
					line.Unit,
					strconv.Itoa(line.Required),
					strconv.Itoa(line.Actual),
					strconv.Itoa(line.Variance),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Item", "Unit", "Required", "Actual", "Variance"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&shortagesOnly, "shortages", false, "Show only items below the requirement")
	return cmd
}
