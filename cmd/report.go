package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"logidash/report"
)

func reportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "print outstanding driver payables",
		Long:  `report folds the driver payables into one balance per driver, largest outstanding amount first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			set, closeStores, err := openSet(cmd)
			if err != nil {
				return err
			}
			defer closeStores()

			payables, err := set.Payables.Store().Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			summary := report.Summarize(payables)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return report.PrintBalances(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().Bool("json", false, "print the report as JSON")

	return cmd
}
